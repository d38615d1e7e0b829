package services_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mariaalvez/vetclinic-api/internal/application/services"
	"github.com/mariaalvez/vetclinic-api/internal/domain"
	"github.com/mariaalvez/vetclinic-api/internal/domain/entity"
	"github.com/mariaalvez/vetclinic-api/internal/domain/repository"
	"github.com/mariaalvez/vetclinic-api/internal/infrastructure/memory"
)

var hoy = time.Date(2025, time.June, 1, 9, 0, 0, 0, time.UTC)

// CNPJ con dígitos verificadores válidos, sin máscara.
const cnpjValido = "11222333000181"

type fixture struct {
	store   *memory.Store
	company *services.CompanyUseCase
	record  *services.RecordUseCase
	animal  *entity.Animal
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()

	animal := &entity.Animal{Name: "Rex", Species: "Canina"}
	require.NoError(t, store.Animals().Create(animal))

	return &fixture{
		store:   store,
		company: services.NewCompanyUseCase(store.Companies(), store.ServiceRecords()),
		record:  services.NewRecordUseCase(store.ServiceRecords(), store.Companies(), store.Animals()),
		animal:  animal,
	}
}

func (f *fixture) crearEmpresa(t *testing.T, name, cnpj string) *entity.ServiceCompany {
	t.Helper()
	company, err := f.company.Create(services.CompanyInput{Name: name, CNPJ: cnpj})
	require.NoError(t, err)
	return company
}

func TestCompany_ValidacionDeCNPJ(t *testing.T) {
	f := newFixture(t)

	cases := []struct {
		name string
		cnpj string
	}{
		{"dígito verificador incorrecto", "11222333000180"},
		{"todos los dígitos iguales", "11111111111111"},
		{"muy corto", "1122233300018"},
		{"con máscara", "11.222.333/0001-81"},
		{"letras", "1122233300018a"},
		{"vacío", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.company.Create(services.CompanyInput{Name: "Lab " + tc.name, CNPJ: tc.cnpj})
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}

	company, err := f.company.Create(services.CompanyInput{Name: "Lab Vet", CNPJ: cnpjValido})
	require.NoError(t, err)
	assert.Equal(t, cnpjValido, company.CNPJ)
}

func TestCompany_Duplicados(t *testing.T) {
	f := newFixture(t)
	f.crearEmpresa(t, "Lab Vet", cnpjValido)

	// Misma razón social.
	_, err := f.company.Create(services.CompanyInput{Name: "Lab Vet", CNPJ: "04252011000110"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	// Mismo CNPJ.
	_, err = f.company.Create(services.CompanyInput{Name: "Otro Lab", CNPJ: cnpjValido})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCompany_TelefonoDe11Digitos(t *testing.T) {
	f := newFixture(t)

	_, err := f.company.Create(services.CompanyInput{Name: "Lab Vet", CNPJ: cnpjValido, Phone: "123456"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	company, err := f.company.Create(services.CompanyInput{Name: "Lab Vet", CNPJ: cnpjValido, Phone: "55999887766"})
	require.NoError(t, err)
	assert.Equal(t, "55999887766", company.Phone)
}

func TestRecord_Validaciones(t *testing.T) {
	f := newFixture(t)
	company := f.crearEmpresa(t, "Lab Vet", cnpjValido)

	base := services.RecordInput{
		CompanyID:   company.ID,
		AnimalID:    f.animal.ID,
		PerformedAt: hoy.AddDate(0, 0, -1),
		AsOf:        hoy,
	}

	// Fecha futura respecto de la referencia.
	futuro := base
	futuro.PerformedAt = hoy.Add(time.Hour)
	_, err := f.record.Create(futuro)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Valor informado debe ser mayor que cero.
	cero := decimal.Zero
	gratis := base
	gratis.Price = &cero
	_, err = f.record.Create(gratis)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	negativo := decimal.NewFromInt(-10)
	conDeuda := base
	conDeuda.Price = &negativo
	_, err = f.record.Create(conDeuda)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Empresa inexistente.
	sinEmpresa := base
	sinEmpresa.CompanyID = "no-existe"
	_, err = f.record.Create(sinEmpresa)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Sin valor informado es válido.
	record, err := f.record.Create(base)
	require.NoError(t, err)
	assert.Nil(t, record.Price)

	// Con valor positivo también.
	precio := decimal.NewFromFloat(150.50)
	conPrecio := base
	conPrecio.Price = &precio
	record, err = f.record.Create(conPrecio)
	require.NoError(t, err)
	require.NotNil(t, record.Price)
	assert.True(t, record.Price.Equal(precio))
}

func TestCompany_NoSeBorraConServicios(t *testing.T) {
	f := newFixture(t)
	company := f.crearEmpresa(t, "Lab Vet", cnpjValido)

	record, err := f.record.Create(services.RecordInput{
		CompanyID:   company.ID,
		AnimalID:    f.animal.ID,
		PerformedAt: hoy.AddDate(0, 0, -1),
		AsOf:        hoy,
	})
	require.NoError(t, err)

	err = f.company.Delete(company.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)

	require.NoError(t, f.record.Delete(record.ID))
	require.NoError(t, f.company.Delete(company.ID))
}

func TestRecord_ListadoFiltrado(t *testing.T) {
	f := newFixture(t)
	lab := f.crearEmpresa(t, "Lab Vet", cnpjValido)
	crematorio := f.crearEmpresa(t, "Crematorio Paz", "04252011000110")

	otro := &entity.Animal{Name: "Mia", Species: "Felina"}
	require.NoError(t, f.store.Animals().Create(otro))

	crear := func(companyID, animalID string, daysAgo int) {
		t.Helper()
		_, err := f.record.Create(services.RecordInput{
			CompanyID:   companyID,
			AnimalID:    animalID,
			PerformedAt: hoy.AddDate(0, 0, -daysAgo),
			AsOf:        hoy,
		})
		require.NoError(t, err)
	}
	crear(lab.ID, f.animal.ID, 1)
	crear(lab.ID, otro.ID, 3)
	crear(crematorio.ID, f.animal.ID, 2)

	porEmpresa, err := f.record.List(repository.ServiceRecordFilter{CompanyID: lab.ID}, 0, 0)
	require.NoError(t, err)
	require.Len(t, porEmpresa, 2)
	// Del más reciente al más antiguo.
	assert.True(t, porEmpresa[0].PerformedAt.After(porEmpresa[1].PerformedAt))

	porAnimal, err := f.record.List(repository.ServiceRecordFilter{AnimalID: f.animal.ID}, 0, 0)
	require.NoError(t, err)
	assert.Len(t, porAnimal, 2)

	desde := hoy.AddDate(0, 0, -2)
	recientes, err := f.record.List(repository.ServiceRecordFilter{PerformedFrom: &desde}, 0, 0)
	require.NoError(t, err)
	assert.Len(t, recientes, 2)
}
