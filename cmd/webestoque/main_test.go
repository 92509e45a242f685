package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func setupWorkdir(t *testing.T) string {
	dir := t.TempDir()
	t.Setenv("WEBESTOQUE_SYSTEM_WORKER_DIR", dir)
	t.Setenv("WEBESTOQUE_STORAGE_TYPE", "bolt")
	t.Setenv("WEBESTOQUE_LOGGER_FILE_ENABLE", "false")
	return dir
}

func addSpool(t *testing.T) {
	out, err := run(t, "", "add",
		"--name", "PLA Azul", "--type", "PLA", "--colors", "Azul",
		"--weight", "1000", "--dimensions", "1.75mm", "--price", "79,90",
		"--quantity", "2", "--description", "Carretel")
	require.NoError(t, err)
	assert.Contains(t, out, "Produto cadastrado com sucesso. (#1)")
}

func TestCLI_AddListExport(t *testing.T) {
	setupWorkdir(t)

	out, err := run(t, "", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Nenhum produto cadastrado.")

	addSpool(t)

	out, err = run(t, "", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "PLA Azul")
	assert.Contains(t, out, "Disponível")

	out, err = run(t, "", "export", "--format", "csv")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "id,name,"))
	assert.Contains(t, out, "1,PLA Azul,PLA,Azul,1000,1.75mm,79.9,2,Carretel,true")

	_, err = run(t, "", "export", "--format", "pdf")
	assert.Error(t, err)
}

func TestCLI_AddRejectsInvalidForm(t *testing.T) {
	setupWorkdir(t)
	_, err := run(t, "", "add", "--name", "PLA", "--weight", "-1", "--price", "1", "--quantity", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Peso")
}

func TestCLI_BuyRestockDelete(t *testing.T) {
	setupWorkdir(t)
	addSpool(t)

	out, err := run(t, "5\n", "buy", "1")
	assert.ErrorIs(t, err, errSilent)
	assert.Contains(t, out, "Quantidade em estoque insuficiente.")

	out, err = run(t, "\n", "buy", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Compra realizada com sucesso! 1 unidade(s) removida(s) do estoque.")

	out, err = run(t, "3\n", "restock", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Reabastecimento realizado com sucesso! 3 unidade(s) adicionada(s) ao estoque.")

	out, err = run(t, "n\n", "delete", "1")
	require.NoError(t, err)
	assert.NotContains(t, out, "excluído")

	out, err = run(t, "s\n", "delete", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Produto excluído com sucesso.")

	_, err = run(t, "", "buy", "1")
	assert.EqualError(t, err, "Produto não encontrado.")
}

func TestCLI_Backup(t *testing.T) {
	dir := setupWorkdir(t)
	addSpool(t)

	out, err := run(t, "", "backup")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(strings.TrimSpace(out), filepath.Join(dir, "backup")))
}
