package client

// Version is the client version, compared with the server's
// Latest-Known-Client-Version header
const Version = "1.2.0"
