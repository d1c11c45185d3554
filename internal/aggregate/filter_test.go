package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/guttosm/salespulse/internal/domain/models"
)

func TestApply_YearThenCompanyCommutes(t *testing.T) {
	recs := randomSales(400, 7)
	recs = append(recs, sale("2022-05-05", "Acme", 1234))

	yearFirst := Filter(Filter(recs, YearIs(2022)), CompanyIs("Acme"))
	companyFirst := Filter(Filter(recs, CompanyIs("Acme")), YearIs(2022))
	single := Apply(recs, models.FilterState{Year: 2022, Company: "Acme"})

	assert.NotEmpty(t, single)
	assert.Equal(t, single, yearFirst)
	assert.Equal(t, single, companyFirst)
	for _, r := range single {
		assert.Equal(t, 2022, r.DateOfSale.Year())
		assert.Equal(t, "Acme", r.Company)
	}
}

func TestApply_AllIsIdentity(t *testing.T) {
	recs := example()
	assert.Equal(t, recs, Apply(recs, models.FilterState{}))
}

func TestApply_NoMatchYieldsEmpty(t *testing.T) {
	got := Apply(example(), models.FilterState{Company: "Nobody"})
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Empty(t, ByMonth(got))
	assert.Empty(t, ByCompany(got))
	assert.Empty(t, ByPriceBin(got, 10))
}

func TestOptions(t *testing.T) {
	recs := append(example(), sale("2019-07-07", "Zeta", 10), sale("2021-03-03", "Acme", 5))
	opts := Options(recs)
	assert.Equal(t, []int{2019, 2021}, opts.Years)
	assert.Equal(t, []string{"Acme", "Beta", "Zeta"}, opts.Companies)
}
