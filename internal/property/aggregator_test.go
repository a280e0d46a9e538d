package property

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingRegistry struct{}

func (failingRegistry) FetchRegistry(context.Context, Address) (*RegistryRecord, error) {
	return nil, NewSourceError(SourceRegistry, errors.New("connection refused"))
}

type failingValuation struct{}

func (failingValuation) FetchValuation(context.Context, Address) (*ValuationRecord, error) {
	return nil, NewSourceError(SourceValuation, errors.New("timeout"))
}

type failingRisk struct{}

func (failingRisk) FetchRisk(context.Context, Address) (*RiskRecord, error) {
	return nil, NewSourceError(SourceRisk, errors.New("503"))
}

func testAddress() Address {
	return NormalizeAddress("123 Main St, San Francisco, CA")
}

func TestAggregateAllSourcesHealthy(t *testing.T) {
	agg, err := NewAggregator(StaticSources())
	require.NoError(t, err)

	snapshot, err := agg.Aggregate(context.Background(), testAddress())
	require.NoError(t, err)

	assert.Equal(t, 3, snapshot.DataSourcesVerified())
	assert.Empty(t, snapshot.Degraded)
	require.NotNil(t, snapshot.Registry)
	require.NotNil(t, snapshot.Valuation)
	require.NotNil(t, snapshot.Risk)
	assert.Equal(t, float64(565000), snapshot.Valuation.EstimatedValue)
	assert.Equal(t, "Clear Title", snapshot.Registry.LegalStatus)
	assert.Equal(t, RiskLow, snapshot.Risk.FloodRisk)
}

func TestAggregateSingleSourceFailureDoesNotBlockOthers(t *testing.T) {
	sources := StaticSources()
	sources.Valuation = failingValuation{}
	agg, err := NewAggregator(sources)
	require.NoError(t, err)

	snapshot, err := agg.Aggregate(context.Background(), testAddress())
	require.NoError(t, err, "one source outage must not fail the pipeline")

	assert.Equal(t, 2, snapshot.DataSourcesVerified())
	assert.Equal(t, []SourceName{SourceValuation}, snapshot.Degraded)
	assert.Nil(t, snapshot.Valuation)
	assert.NotNil(t, snapshot.Registry)
	assert.NotNil(t, snapshot.Risk)
}

func TestAggregateDegradedOrderIsDeterministic(t *testing.T) {
	sources := Sources{
		Registry:  failingRegistry{},
		Valuation: StaticValuationSource{},
		Risk:      failingRisk{},
	}
	agg, err := NewAggregator(sources)
	require.NoError(t, err)

	// The degraded list follows source order, not completion order.
	for range 10 {
		snapshot, err := agg.Aggregate(context.Background(), testAddress())
		require.NoError(t, err)
		assert.Equal(t, []SourceName{SourceRegistry, SourceRisk}, snapshot.Degraded)
	}
}

func TestAggregateAllSourcesFailing(t *testing.T) {
	sources := Sources{
		Registry:  failingRegistry{},
		Valuation: failingValuation{},
		Risk:      failingRisk{},
	}
	agg, err := NewAggregator(sources)
	require.NoError(t, err)

	snapshot, err := agg.Aggregate(context.Background(), testAddress())
	require.NoError(t, err)
	assert.Equal(t, 0, snapshot.DataSourcesVerified())
	assert.Len(t, snapshot.Degraded, 3)
}

func TestSnapshotEstimatedValueFallsBackToTaxAssessment(t *testing.T) {
	sources := StaticSources()
	sources.Valuation = failingValuation{}
	agg, err := NewAggregator(sources)
	require.NoError(t, err)

	snapshot, err := agg.Aggregate(context.Background(), testAddress())
	require.NoError(t, err)
	assert.Equal(t, float64(495000), snapshot.EstimatedValue())
}

func TestNewAggregatorRequiresAllSources(t *testing.T) {
	_, err := NewAggregator(Sources{Registry: StaticRegistrySource{}})
	assert.Error(t, err)
}
