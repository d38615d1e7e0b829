package viacep_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mariaalvez/vetclinic-api/internal/infrastructure/viacep"
)

func TestLookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ws/80010000/json/", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"logradouro":"Rua XV de Novembro","localidade":"Curitiba","uf":"PR"}`))
	}))
	defer srv.Close()

	c := viacep.NewClient(viacep.WithBaseURL(srv.URL))
	addr, err := c.Lookup(context.Background(), "80010000")
	require.NoError(t, err)
	require.NotNil(t, addr)
	assert.Equal(t, "Rua XV de Novembro", addr.Street)
	assert.Equal(t, "Curitiba", addr.City)
	assert.Equal(t, "PR", addr.State)
}

func TestLookup_CEPInexistente(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"erro": true}`))
	}))
	defer srv.Close()

	c := viacep.NewClient(viacep.WithBaseURL(srv.URL))
	addr, err := c.Lookup(context.Background(), "99999999")
	require.NoError(t, err)
	assert.Nil(t, addr)
}

func TestLookup_ErrorDelServicio(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := viacep.NewClient(viacep.WithBaseURL(srv.URL))
	_, err := c.Lookup(context.Background(), "80010000")
	assert.Error(t, err)
}
