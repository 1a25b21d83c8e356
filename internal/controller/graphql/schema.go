package graphql

import (
	"github.com/graphql-go/graphql"
)

// Schema represents the GraphQL schema
type Schema struct {
	schema graphql.Schema
}

// BuildSchema builds the GraphQL schema
func BuildSchema(resolver *Resolver) (*Schema, error) {
	menuItemType := graphql.NewObject(graphql.ObjectConfig{
		Name: "MenuItem",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
			},
			"name": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
			},
			"description": &graphql.Field{
				Type: graphql.String,
			},
			"category": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
			},
			"price": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Float),
			},
			"imageUrl": &graphql.Field{
				Type: graphql.String,
			},
			"available": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Boolean),
			},
			"tags": &graphql.Field{
				Type: graphql.NewList(graphql.NewNonNull(graphql.String)),
			},
			"createdAt": &graphql.Field{
				Type: graphql.NewNonNull(graphql.DateTime),
			},
			"updatedAt": &graphql.Field{
				Type: graphql.NewNonNull(graphql.DateTime),
			},
		},
	})

	pageInfoType := graphql.NewObject(graphql.ObjectConfig{
		Name: "PageInfo",
		Fields: graphql.Fields{
			"page": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Int),
			},
			"size": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Int),
			},
			"totalItems": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Int),
			},
			"totalPages": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Int),
			},
			"hasNext": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Boolean),
			},
			"hasPrev": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Boolean),
			},
		},
	})

	menuConnectionType := graphql.NewObject(graphql.ObjectConfig{
		Name: "MenuConnection",
		Fields: graphql.Fields{
			"items": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(menuItemType))),
			},
			"pageInfo": &graphql.Field{
				Type: graphql.NewNonNull(pageInfoType),
			},
		},
	})

	userType := graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
			},
			"firstName": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
			},
			"lastName": &graphql.Field{
				Type: graphql.String,
			},
			"email": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
			},
			"phone": &graphql.Field{
				Type: graphql.String,
			},
			"role": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
			},
			"loyaltyPoints": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Int),
			},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"menu": &graphql.Field{
				Type:        menuConnectionType,
				Description: "Browse the menu catalog with pagination",
				Args: graphql.FieldConfigArgument{
					"page": &graphql.ArgumentConfig{
						Type:         graphql.Int,
						DefaultValue: 1,
					},
					"size": &graphql.ArgumentConfig{
						Type:         graphql.Int,
						DefaultValue: 10,
					},
					"category": &graphql.ArgumentConfig{
						Type: graphql.String,
					},
				},
				Resolve: resolver.Menu,
			},
			"menuItem": &graphql.Field{
				Type:        menuItemType,
				Description: "Get one menu item by ID",
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{
						Type: graphql.NewNonNull(graphql.ID),
					},
				},
				Resolve: resolver.MenuItem,
			},
			"me": &graphql.Field{
				Type:        userType,
				Description: "Get the current authenticated user",
				Resolve:     resolver.Me,
			},
		},
	})

	schema, err := graphql.NewSchema(graphql.SchemaConfig{
		Query: queryType,
	})
	if err != nil {
		return nil, err
	}

	return &Schema{schema: schema}, nil
}

// Schema returns the graphql.Schema
func (s *Schema) Schema() graphql.Schema {
	return s.schema
}
