package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ubicacion-qr/internal/cli"
	"github.com/jhoicas/ubicacion-qr/pkg/config"
)

const inventoryCSV = "product_id;remain_quantity;basket_location\n" +
	"ABC1;3;AB53004\n" +
	"XYZ9;0;A-C-10-200\n" +
	";5;A-B-53-004\n" +
	"QQ7;1;basura\n"

func testConfig() *config.Config {
	return &config.Config{
		App:      config.AppConfig{Env: "test"},
		Location: config.LocationConfig{DefaultFallback: "A-B-53-004", SearchDebounceMS: 300},
	}
}

func run(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := cli.NewRootCommand(testConfig())
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func writeCSV(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "inventario.csv")
	require.NoError(t, os.WriteFile(path, []byte(inventoryCSV), 0o644))
	return path
}

func TestValidate(t *testing.T) {
	out, _, err := run(t, "validate", "A-B-53-004")
	require.NoError(t, err)
	assert.Contains(t, out, "A-B-53-004\tválido")

	out, _, err = run(t, "validate", "A-B-53-004", "AB53004", "a-b-53-004")
	assert.ErrorIs(t, err, cli.ErrInvalidCodes)
	assert.Contains(t, out, "AB53004\tinválido (compacto: A-B-53-004)")
	assert.Contains(t, out, "a-b-53-004\tinválido\n")
}

func TestValidate_JSON(t *testing.T) {
	out, _, err := run(t, "--format", "json", "validate", "AB53004")
	require.ErrorIs(t, err, cli.ErrInvalidCodes)

	var checks []cli.CodeCheck
	require.NoError(t, json.Unmarshal([]byte(out), &checks))
	require.Len(t, checks, 1)
	assert.False(t, checks[0].Valid)
	assert.EqualValues(t, "A-B-53-004", checks[0].Normalized)
}

func TestFlagsInvalidos(t *testing.T) {
	_, _, err := run(t, "--format", "xml", "validate", "A-B-53-004")
	assert.Error(t, err)

	_, _, err = run(t, "--fallback", "AB53004", "validate", "A-B-53-004")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no tiene el formato L-L-DD-DDD")
}

func TestResolve_Texto(t *testing.T) {
	out, errOut, err := run(t, "--fallback", "Z-Z-99-999", "resolve", writeCSV(t))
	require.NoError(t, err)

	assert.Contains(t, out, "UBICACIÓN")
	assert.Contains(t, out, "A-B-53-004")
	assert.Contains(t, out, "AB53004")
	assert.Contains(t, out, "Z-Z-99-999")
	assert.Contains(t, out, "basura (respaldo)")
	assert.Contains(t, errOut, "fila 3 descartada: product_id")
}

func TestResolve_JSONConConsulta(t *testing.T) {
	out, _, err := run(t, "--format", "json", "resolve", writeCSV(t), "--query", "xyz")
	require.NoError(t, err)

	var res cli.ResolveOutput
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "inventario.csv", res.FileName)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "XYZ9", res.Items[0].ProductID)
	assert.Len(t, res.Skipped, 1)
}

func TestResolve_ArchivoNoSoportado(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notas.txt")
	require.NoError(t, os.WriteFile(path, []byte("hola"), 0o644))

	_, _, err := run(t, "resolve", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "notas.txt no es un archivo excel")
}

func TestLabels(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "etiquetas.pdf")
	out, _, err := run(t, "labels", writeCSV(t), "--out", dst, "-q", "abc")
	require.NoError(t, err)
	assert.Contains(t, out, dst)

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestLabels_SinCoincidencias(t *testing.T) {
	_, _, err := run(t, "labels", writeCSV(t), "--out", filepath.Join(t.TempDir(), "x.pdf"), "-q", "nada")
	assert.Error(t, err)
}
