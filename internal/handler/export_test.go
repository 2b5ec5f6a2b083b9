package handler

// Aliases exposing the request/response DTOs to the external test package.
type (
	RegisterReq = registerReq
	LoginReq    = loginReq
	LoginResp   = loginResp
)
