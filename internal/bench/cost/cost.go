// Package cost projects what a benchmarked workload would cost on each
// service, from a static list-price table.
package cost

import "github.com/DjordjeVuckovic/kb-bench/pkg/utils"

const daysPerMonth = 30

// Pricing is a service's list price in USD.
type Pricing struct {
	PerQuery     float64 `json:"per_query" yaml:"per_query"`
	StoragePerGB float64 `json:"storage_per_gb" yaml:"storage_per_gb"`
	IndexPerGB   float64 `json:"index_per_gb" yaml:"index_per_gb"`
}

// Fallback applies to services missing from the table.
var Fallback = Pricing{PerQuery: 0.001, StoragePerGB: 0.02, IndexPerGB: 0.04}

var local = Pricing{}

// DefaultTable holds published example prices; refresh before quoting them.
var DefaultTable = Table{
	"aws_bedrock_kb":    {PerQuery: 0.001, StoragePerGB: 0.023, IndexPerGB: 0.05},
	"gcp_vertex":        {PerQuery: 0.0015, StoragePerGB: 0.02, IndexPerGB: 0.04},
	"aliyun_bailian":    {PerQuery: 0.006, StoragePerGB: 0.015, IndexPerGB: 0.03},
	"volcengine_viking": {PerQuery: 0.005, StoragePerGB: 0.012, IndexPerGB: 0.025},
	"postgres":          local,
	"elasticsearch":     local,
	"qdrant":            local,
	"leveldb":           local,
	"memory":            local,
}

type Table map[string]Pricing

func (t Table) Lookup(service string) (Pricing, bool) {
	p, ok := t[service]
	if !ok {
		return Fallback, false
	}
	return p, true
}

// Estimate is the projected cost of a run.
type Estimate struct {
	Service        string  `json:"service"`
	CostPerQuery   float64 `json:"cost_per_query"`
	StoragePerGB   float64 `json:"storage_cost_per_gb"`
	QueryCost      float64 `json:"query_cost"`
	StorageCost    float64 `json:"storage_cost"`
	IndexCost      float64 `json:"index_cost"`
	MonthlyCost    float64 `json:"estimated_monthly_cost"`
	APICalls       int     `json:"api_calls"`
	Currency       string  `json:"currency"`
	FallbackPrices bool    `json:"fallback_prices,omitempty"`
}

// Estimate prices queries and storageGB for service. The monthly projection
// assumes the run's query volume repeats every day.
func (t Table) Estimate(service string, queries int, storageGB float64) Estimate {
	p, known := t.Lookup(service)
	if queries < 0 {
		queries = 0
	}
	if storageGB < 0 {
		storageGB = 0
	}

	storage := storageGB * p.StoragePerGB
	return Estimate{
		Service:        service,
		CostPerQuery:   utils.RoundDecimal(p.PerQuery, 6),
		StoragePerGB:   utils.RoundDecimal(p.StoragePerGB, 4),
		QueryCost:      utils.RoundDecimal(float64(queries)*p.PerQuery, 6),
		StorageCost:    utils.RoundDecimal(storage, 6),
		IndexCost:      utils.RoundDecimal(storageGB*p.IndexPerGB, 6),
		MonthlyCost:    utils.RoundDecimal(float64(queries)*daysPerMonth*p.PerQuery+storage, 2),
		APICalls:       queries,
		Currency:       "USD",
		FallbackPrices: !known,
	}
}

// EstimateFor prices against DefaultTable.
func EstimateFor(service string, queries int, storageGB float64) Estimate {
	return DefaultTable.Estimate(service, queries, storageGB)
}

// BytesToGB converts a corpus size for Estimate.
func BytesToGB(n int64) float64 {
	return float64(n) / (1 << 30)
}
