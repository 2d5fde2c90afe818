package dto

// RemoteStatusResponse estado del espejo remoto.
type RemoteStatusResponse struct {
	Configured bool   `json:"configured"`
	Endpoint   string `json:"endpoint"`
}

// SetRemoteEndpointRequest nueva URL del script; vacía deshabilita el espejo.
type SetRemoteEndpointRequest struct {
	URL string `json:"url" validate:"omitempty,url"`
}
