package rules

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	rs := Default()
	assert.NotEmpty(t, rs.CompanyDomain)
	assert.NotEmpty(t, rs.ProviderDomains)
	assert.NotEmpty(t, rs.Keywords.Factura)
	assert.NotEmpty(t, rs.Keywords.Marketing)
	assert.NotEmpty(t, rs.InvoiceFilename)
}

func TestLoad_MergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	content := `company_domain: Ferreteria-Lopez.ES
provider_domains:
  - acme.example
keywords:
  marketing:
    - SPAM
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	rs, err := Load(path)
	require.NoError(t, err)

	// Overridden fields replace the defaults, lowercased.
	assert.Equal(t, "ferreteria-lopez.es", rs.CompanyDomain)
	assert.Equal(t, []string{"acme.example"}, rs.ProviderDomains)
	assert.Equal(t, []string{"spam"}, rs.Keywords.Marketing)

	// Absent fields keep the defaults.
	assert.Equal(t, Default().Keywords.Factura, rs.Keywords.Factura)
	assert.Equal(t, Default().InvoiceFilename, rs.InvoiceFilename)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestIsProviderDomain(t *testing.T) {
	rs := Default()
	assert.True(t, rs.IsProviderDomain("endesa.es"))
	assert.True(t, rs.IsProviderDomain("ENDESA.ES"))
	assert.True(t, rs.IsProviderDomain("facturacion.endesa.es"))
	assert.False(t, rs.IsProviderDomain("notendesa.es"))
	assert.False(t, rs.IsProviderDomain(""))
}

func TestMarshalRoundTrip(t *testing.T) {
	data, err := Default().Marshal()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	rs, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), rs)
}
