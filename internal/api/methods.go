package api

const ServiceName = "projecthub.v1.ProjectHub"

// Full method names as they appear on the wire.
const (
	MethodRegister      = "/" + ServiceName + "/Register"
	MethodLogin         = "/" + ServiceName + "/Login"
	MethodLogout        = "/" + ServiceName + "/Logout"
	MethodProfile       = "/" + ServiceName + "/Profile"
	MethodListUsers     = "/" + ServiceName + "/ListUsers"
	MethodCreateProject = "/" + ServiceName + "/CreateProject"
	MethodListProjects  = "/" + ServiceName + "/ListProjects"
	MethodAddMembers    = "/" + ServiceName + "/AddMembers"
	MethodGetProject    = "/" + ServiceName + "/GetProject"
)
