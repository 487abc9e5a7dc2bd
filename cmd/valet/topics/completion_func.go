package topics

const (
	bashCompletionFunc = `
__internal_list_vms() {
    local valet_output out
    if valet_output=$(valet vm list --all --basic 2>/dev/null); then
        out=($(echo "${valet_output}"))
        COMPREPLY=( $( compgen -W "${out[*]}" -- "$cur" ) )
    fi
}

__internal_list_users() {
    local valet_output out
    if valet_output=$(valet user list --basic 2>/dev/null); then
        out=($(echo "${valet_output}"))
        COMPREPLY=( $( compgen -W "${out[*]}" -- "$cur" ) )
    fi
}

__internal_list_permissions() {
    COMPREPLY=( $( compgen -W "Read Write Admin" -- "$cur" ) )
}

__internal_permission_set() {
    if [ "$prev" = "set" ]; then
        __internal_list_permissions
    else
        __internal_list_users
    fi
}

__valet_get_servers() {
    local out servers
    servers=$(egrep '^[[:blank:]]*name[[:blank:]]*=' ~/.valet.toml | awk -F= '{print $2}')
    out=($(echo $servers))
    COMPREPLY=( $( compgen -W "${out[*]}" -- "$cur" ) )
}

__custom_func() {
    case ${last_command} in
        valet_vm_start | valet_vm_deallocate | valet_vm_poweroff | valet_vm_restart)
            __internal_list_vms
            return
            ;;
        valet_user_update | valet_user_delete)
            __internal_list_users
            return
            ;;
        valet_permission_list)
            __internal_list_permissions
            return
            ;;
        valet_permission_set)
            __internal_permission_set
            return
            ;;
        *)
            ;;
    esac
}
`
)
