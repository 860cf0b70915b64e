package reference_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JoseLopezGonzalez/lapesquerapp-frontend-sub007/internal/domain/reference"
)

func TestNormalize_QuitaTildesYColapsaEspacios(t *testing.T) {
	assert.Equal(t, "PENA BLANCA", reference.Normalize("  Peña   Blanca "))
	assert.Equal(t, "CODIGO", reference.Normalize("Código"))
	assert.Equal(t, "", reference.Normalize("   "))
	assert.True(t, reference.SameText("Rapé", "RAPE"))
}

func TestFindBarco_ExactoYNormalizado(t *testing.T) {
	tables := buildTables()

	b, ok := tables.FindBarco("742")
	require.True(t, ok)
	assert.Equal(t, "PEPE MANUEL", b.Nombre)

	b, ok = tables.FindBarco(" hu-2-1234 ")
	require.True(t, ok)
	assert.Equal(t, "NUEVO LUCERO", b.Nombre)

	_, ok = tables.FindBarco("999")
	assert.False(t, ok)
	_, ok = tables.FindBarco("")
	assert.False(t, ok)
}

func TestFindArmador_IgnoraFormatoDelCIF(t *testing.T) {
	tables := buildTables()
	a, ok := tables.FindArmador("e-72452600")
	require.True(t, ok)
	assert.Equal(t, "HERMANOS CORDERO GIL CB", a.Nombre)
	require.NotNil(t, a.CodBrisapp)
	assert.Equal(t, 31, *a.CodBrisapp)
}

func TestFindProducto_PorAlias(t *testing.T) {
	tables := buildTables()
	p, ok := tables.FindProducto("rape")
	require.True(t, ok)
	assert.Equal(t, "1001", p.CodA3erp)

	p, ok = tables.FindProducto("Lophius piscatorius")
	require.True(t, ok)
	assert.Equal(t, "1001", p.CodA3erp)
}

func TestFindLonjaYVendiduria(t *testing.T) {
	tables := buildTables()

	l, ok := tables.FindLonja("Lonja de Isla Cristina")
	require.True(t, ok)
	assert.Equal(t, "400010", l.CodA3erp)

	l, ok = tables.FindLonja("Q2100000A")
	require.True(t, ok)
	assert.Equal(t, "LONJA DE ISLA CRISTINA", l.Nombre)

	v, ok := tables.FindVendiduria("vendeduría del sur")
	require.True(t, ok)
	assert.Equal(t, "400200", v.CodA3erp)
}

func TestServiceSchedule(t *testing.T) {
	tables := buildTables()
	assert.Len(t, tables.ServiceSchedule(reference.ScheduleLonjaDeIsla), 1)
	assert.Nil(t, tables.ServiceSchedule("inexistente"))
	assert.Nil(t, (&reference.Tables{}).ServiceSchedule(reference.ScheduleLonjaDeIsla))
}

func buildTables() *reference.Tables {
	id := 31
	return &reference.Tables{
		Barcos: []reference.Barco{
			{Cod: "742", Nombre: "PEPE MANUEL", CodA3erp: "400742"},
			{Cod: "HU-2-1234", Nombre: "NUEVO LUCERO", CodA3erp: "401234"},
		},
		Armadores: []reference.Armador{
			{CIF: "E72452600", Nombre: "HERMANOS CORDERO GIL CB", CodA3erp: "400300", CodBrisapp: &id},
		},
		Productos: []reference.Producto{
			{Nombre: "RAPÉ", Alias: []string{"LOPHIUS PISCATORIUS"}, CodA3erp: "1001"},
		},
		Lonjas: []reference.Lonja{
			{Nombre: "LONJA DE ISLA CRISTINA", CIF: "Q2100000A", CodA3erp: "400010"},
		},
		DatosVendidurias: []reference.Vendiduria{
			{Nombre: "VENDEDURIA DEL SUR", CIF: "B21000001", CodA3erp: "400200", PorcentajeServicios: decimal.NewFromInt(2)},
		},
		Servicios: map[string][]reference.Servicio{
			reference.ScheduleLonjaDeIsla: {{Codigo: "2001", Descripcion: "TARIFA G4", Porcentaje: decimal.NewFromInt(2)}},
		},
	}
}
