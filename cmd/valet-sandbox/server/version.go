package server

// Version of the sandbox server
const Version = "1.2.0"
