package registry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mariaalvez/vetclinic-api/internal/application/registry"
	"github.com/mariaalvez/vetclinic-api/internal/domain"
	"github.com/mariaalvez/vetclinic-api/internal/infrastructure/memory"
)

// lookupFijo responde siempre la misma dirección; sirve para probar el
// autocompletado sin salir a la red.
type lookupFijo struct {
	addr *registry.Address
	err  error
}

func (l *lookupFijo) Lookup(_ context.Context, _ string) (*registry.Address, error) {
	return l.addr, l.err
}

func TestTutor_CreateConCEP(t *testing.T) {
	store := memory.NewStore()
	lookup := &lookupFijo{addr: &registry.Address{Street: "Rua das Flores", City: "Curitiba", State: "PR"}}
	uc := registry.NewTutorUseCase(store.Tutors(), store.Animals(), lookup)

	tutor, err := uc.Create(context.Background(), registry.TutorInput{
		Name: "João Silva", CPF: "12345678901", Phone: "41999990000", CEP: "80010000",
	})
	require.NoError(t, err)
	assert.Equal(t, "Rua das Flores", tutor.Address)
	assert.Equal(t, "Curitiba", tutor.City)
	assert.Equal(t, "PR", tutor.State)
}

func TestTutor_CEPNoDisponible_RegistraIgual(t *testing.T) {
	store := memory.NewStore()
	lookup := &lookupFijo{err: errors.New("servicio caído")}
	uc := registry.NewTutorUseCase(store.Tutors(), store.Animals(), lookup)

	tutor, err := uc.Create(context.Background(), registry.TutorInput{
		Name: "Maria Costa", CPF: "98765432100", CEP: "80010000",
	})
	require.NoError(t, err)
	assert.Empty(t, tutor.Address)
}

func TestTutor_Validaciones(t *testing.T) {
	store := memory.NewStore()
	uc := registry.NewTutorUseCase(store.Tutors(), store.Animals(), nil)
	ctx := context.Background()

	casos := []struct {
		nombre string
		input  registry.TutorInput
	}{
		{"sin nombre", registry.TutorInput{CPF: "12345678901"}},
		{"cpf corto", registry.TutorInput{Name: "Ana", CPF: "1234567890"}},
		{"cpf con letras", registry.TutorInput{Name: "Ana", CPF: "1234567890a"}},
		{"teléfono corto", registry.TutorInput{Name: "Ana", CPF: "12345678901", Phone: "999"}},
		{"cep inválido", registry.TutorInput{Name: "Ana", CPF: "12345678901", CEP: "80010-000"}},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			_, err := uc.Create(ctx, c.input)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestTutor_CPFDuplicado(t *testing.T) {
	store := memory.NewStore()
	uc := registry.NewTutorUseCase(store.Tutors(), store.Animals(), nil)
	ctx := context.Background()

	_, err := uc.Create(ctx, registry.TutorInput{Name: "João", CPF: "12345678901"})
	require.NoError(t, err)

	_, err = uc.Create(ctx, registry.TutorInput{Name: "Otro João", CPF: "12345678901"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestTutor_DeleteConAnimales(t *testing.T) {
	store := memory.NewStore()
	tutores := registry.NewTutorUseCase(store.Tutors(), store.Animals(), nil)
	animales := registry.NewAnimalUseCase(store.Animals(), store.Tutors())
	ctx := context.Background()

	tutor, err := tutores.Create(ctx, registry.TutorInput{Name: "João", CPF: "12345678901"})
	require.NoError(t, err)
	animal, err := animales.Create(registry.AnimalInput{TutorID: tutor.ID, Name: "Rex", Species: "Canina"})
	require.NoError(t, err)

	assert.ErrorIs(t, tutores.Delete(tutor.ID), domain.ErrConflict)

	require.NoError(t, animales.Delete(animal.ID))
	assert.NoError(t, tutores.Delete(tutor.ID))
}

func TestAnimal_TutorInexistente(t *testing.T) {
	store := memory.NewStore()
	uc := registry.NewAnimalUseCase(store.Animals(), store.Tutors())

	_, err := uc.Create(registry.AnimalInput{TutorID: "no-existe", Name: "Rex", Species: "Canina"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAnimal_ListPorTutor(t *testing.T) {
	store := memory.NewStore()
	tutores := registry.NewTutorUseCase(store.Tutors(), store.Animals(), nil)
	animales := registry.NewAnimalUseCase(store.Animals(), store.Tutors())
	ctx := context.Background()

	tutor, err := tutores.Create(ctx, registry.TutorInput{Name: "João", CPF: "12345678901"})
	require.NoError(t, err)
	_, err = animales.Create(registry.AnimalInput{TutorID: tutor.ID, Name: "Rex", Species: "Canina"})
	require.NoError(t, err)
	_, err = animales.Create(registry.AnimalInput{Name: "Mimi", Species: "Felina"})
	require.NoError(t, err)

	delTutor, err := animales.List(tutor.ID, 10, 0)
	require.NoError(t, err)
	assert.Len(t, delTutor, 1)

	todos, err := animales.List("", 10, 0)
	require.NoError(t, err)
	assert.Len(t, todos, 2)
}

func TestVeterinarian_CRUD(t *testing.T) {
	store := memory.NewStore()
	uc := registry.NewVeterinarianUseCase(store.Vets())

	vet, err := uc.Create(registry.VeterinarianInput{Name: "Dra. Souza", Phone: "4133330000"})
	require.NoError(t, err)

	vet, err = uc.Update(vet.ID, registry.VeterinarianInput{Name: "Dra. Souza Lima"})
	require.NoError(t, err)
	assert.Equal(t, "Dra. Souza Lima", vet.Name)

	require.NoError(t, uc.Delete(vet.ID))
	_, err = uc.GetByID(vet.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
