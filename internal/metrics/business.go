package metrics

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

var (
	meter = otel.Meter("recipedesk/business")

	// Search metrics
	RecipeSearchesTotal metric.Int64Counter
	RecipeSearchResults metric.Int64Histogram

	// Store metrics
	StoreAdditionsTotal metric.Int64Counter

	// Assistant metrics
	AssistantRepliesTotal  metric.Int64Counter
	AssistantFallbackTotal metric.Int64Counter

	// External API metrics
	ExternalAPICallsTotal metric.Int64Counter
	ExternalAPIDuration   metric.Float64Histogram
)

// The global meter delegates to whatever provider is installed later,
// so instruments are created once at package load and never nil.
func init() {
	if err := Init(); err != nil {
		otel.Handle(err)
	}
}

func Init() error {
	var err error

	RecipeSearchesTotal, err = meter.Int64Counter(
		"recipe.searches.total",
		metric.WithDescription("Total number of recipe searches by outcome"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return err
	}

	RecipeSearchResults, err = meter.Int64Histogram(
		"recipe.search.results",
		metric.WithDescription("Number of recipes returned per search"),
		metric.WithUnit("1"),
		metric.WithExplicitBucketBoundaries(0, 1, 3, 5, 10),
	)
	if err != nil {
		return err
	}

	StoreAdditionsTotal, err = meter.Int64Counter(
		"store.additions.total",
		metric.WithDescription("Total number of recipes added to favorites or the meal plan"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return err
	}

	AssistantRepliesTotal, err = meter.Int64Counter(
		"assistant.replies.total",
		metric.WithDescription("Total number of assistant replies by outcome"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return err
	}

	AssistantFallbackTotal, err = meter.Int64Counter(
		"assistant.fallback.total",
		metric.WithDescription("Total number of assistant provider fallback events"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return err
	}

	ExternalAPICallsTotal, err = meter.Int64Counter(
		"external.api.calls.total",
		metric.WithDescription("Total number of external API calls"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return err
	}

	ExternalAPIDuration, err = meter.Float64Histogram(
		"external.api.duration",
		metric.WithDescription("Duration of external API calls"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.1, 0.5, 1, 2, 5, 10, 30),
	)
	if err != nil {
		return err
	}

	return nil
}
