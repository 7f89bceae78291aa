package orderrepo_test

import (
	"testing"

	"orders/internal/adapters/out/postgres/orderrepo"
	"orders/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(
		postgresdriver.New(postgresdriver.Config{DSN: "host=localhost user=orders dbname=orders sslmode=disable"}),
		&gorm.Config{DryRun: true, DisableAutomaticPing: true},
	)
	require.NoError(t, err)
	return db
}

func TestGormOrderFinder_SearchHugePageSizeWithoutMatches(t *testing.T) {
	finder := orderrepo.NewGormOrderFinder(dryRunDB(t))

	var (
		page ports.OrderPage
		err  error
	)
	require.NotPanics(t, func() {
		page, err = finder.Search(t.Context(), ports.OrderFilter{Customer: "Alice"},
			ports.PageRequest{PageIndex: 0, PageSize: 1 << 50})
	})

	require.NoError(t, err)
	assert.Equal(t, int64(0), page.Total)
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
}
