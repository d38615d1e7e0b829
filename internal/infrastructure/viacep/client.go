package viacep

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/mariaalvez/vetclinic-api/internal/application/registry"
)

const defaultBaseURL = "https://viacep.com.br"

var _ registry.AddressLookup = (*Client)(nil)

// Client consulta el servicio público ViaCEP para autocompletar direcciones
// a partir de un CEP. Implementa registry.AddressLookup.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configura el cliente.
type Option func(*Client)

// WithBaseURL cambia la URL base (tests).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient cambia el cliente HTTP subyacente.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

// NewClient construye el cliente con un timeout corto: la consulta de CEP es
// un accesorio del registro de tutores, no puede retrasarlo indefinidamente.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// viaCEPResponse es el cuerpo que devuelve el servicio. El campo Erro viene
// como true cuando el CEP tiene formato válido pero no existe.
type viaCEPResponse struct {
	Logradouro string `json:"logradouro"`
	Localidade string `json:"localidade"`
	UF         string `json:"uf"`
	Erro       bool   `json:"erro,omitempty"`
}

// Lookup resuelve un CEP de 8 dígitos. Devuelve nil sin error si el CEP no existe.
func (c *Client) Lookup(ctx context.Context, cep string) (*registry.Address, error) {
	url := fmt.Sprintf("%s/ws/%s/json/", c.baseURL, cep)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("viacep: crear request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("viacep: consultar CEP: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("viacep: status inesperado %d", resp.StatusCode)
	}

	var body viaCEPResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("viacep: decodificar respuesta: %w", err)
	}
	if body.Erro {
		return nil, nil
	}
	return &registry.Address{
		Street: body.Logradouro,
		City:   body.Localidade,
		State:  body.UF,
	}, nil
}
