package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// SyncStatus resultado de una escritura en los dos destinos.
// Local es true siempre que la operación tuvo éxito; Sheets solo si el espejo remoto
// aceptó el registro. Con Sheets=false la escritura es un éxito degradado.
type SyncStatus struct {
	Local       bool   `json:"local"`
	Sheets      bool   `json:"sheets"`
	RemoteError string `json:"remoteError,omitempty"`
	Message     string `json:"message,omitempty"`
}

// Degraded indica que el registro solo quedó en el almacén local.
func (s SyncStatus) Degraded() bool {
	return s.Local && !s.Sheets
}
