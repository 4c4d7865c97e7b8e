package dto

// Pagina is one page of a client-side filtered and paginated resource list.
type Pagina[T any] struct {
	Items        []T    `json:"items"`
	Total        int    `json:"total"`
	Pagina       int    `json:"pagina"`
	TamanoPagina int    `json:"tamanoPagina"`
	TotalPaginas int    `json:"totalPaginas"`
	Busqueda     string `json:"busqueda,omitempty"`
	// Error is the banner text when the list could not be loaded.
	Error string `json:"error,omitempty"`
}
