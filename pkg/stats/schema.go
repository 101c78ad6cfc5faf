// Package stats exposes a finished analysis as a read-only GraphQL schema so
// results can be queried selectively, for example from the -query flag.
package stats

import (
	"fmt"

	"github.com/dd0wney/cluso-graphstats/pkg/analyzer"
	"github.com/graphql-go/graphql"
)

var degreeCountType = graphql.NewObject(graphql.ObjectConfig{
	Name: "DegreeCount",
	Fields: graphql.Fields{
		"degree": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"count":  &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
	},
})

var parserStatsType = graphql.NewObject(graphql.ObjectConfig{
	Name: "ParserStats",
	Fields: graphql.Fields{
		"lines":   &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"skipped": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"pairs":   &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
	},
})

func constant(v any) graphql.FieldResolveFn {
	return func(graphql.ResolveParams) (interface{}, error) {
		return v, nil
	}
}

// NewSchema builds a schema whose fields resolve from s.
func NewSchema(s analyzer.Summary) (graphql.Schema, error) {
	distribution := make([]map[string]any, 0, len(s.Distribution))
	for _, degree := range s.Distribution.Degrees() {
		distribution = append(distribution, map[string]any{
			"degree": degree,
			"count":  s.Distribution[degree],
		})
	}

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"nodeCount":        &graphql.Field{Type: graphql.Int, Resolve: constant(s.Nodes)},
			"edgeCount":        &graphql.Field{Type: graphql.Int, Resolve: constant(s.Edges)},
			"averageDegree":    &graphql.Field{Type: graphql.Float, Resolve: constant(s.AverageDegree)},
			"components":       &graphql.Field{Type: graphql.Int, Resolve: constant(s.Components)},
			"largestComponent": &graphql.Field{Type: graphql.Int, Resolve: constant(s.LargestComponent)},
			"maxDegree":        &graphql.Field{Type: graphql.Int, Resolve: constant(s.MaxDegree)},
			"medianDegree":     &graphql.Field{Type: graphql.Float, Resolve: constant(s.MedianDegree)},
			"parser": &graphql.Field{
				Type: parserStatsType,
				Resolve: constant(map[string]any{
					"lines":   s.Lines.Lines,
					"skipped": s.Lines.Skipped,
					"pairs":   s.Lines.Pairs,
				}),
			},
			"degreeDistribution": &graphql.Field{
				Type: graphql.NewList(degreeCountType),
				Args: graphql.FieldConfigArgument{
					"minDegree": &graphql.ArgumentConfig{Type: graphql.Int},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					minDegree, ok := p.Args["minDegree"].(int)
					if !ok {
						return distribution, nil
					}
					filtered := make([]map[string]any, 0, len(distribution))
					for _, row := range distribution {
						if row["degree"].(int) >= minDegree {
							filtered = append(filtered, row)
						}
					}
					return filtered, nil
				},
			},
		},
	})

	schema, err := graphql.NewSchema(graphql.SchemaConfig{Query: queryType})
	if err != nil {
		return graphql.Schema{}, fmt.Errorf("failed to create schema: %w", err)
	}
	return schema, nil
}

// ExecuteQuery executes a GraphQL query against a schema
func ExecuteQuery(query string, schema graphql.Schema) *graphql.Result {
	return graphql.Do(graphql.Params{
		Schema:        schema,
		RequestString: query,
	})
}

// Query builds a schema for s and runs query against it.
func Query(s analyzer.Summary, query string) (*graphql.Result, error) {
	schema, err := NewSchema(s)
	if err != nil {
		return nil, err
	}
	return ExecuteQuery(query, schema), nil
}
