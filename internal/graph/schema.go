// Package graph declares the GraphQL schema and binds its operations to the
// application services.
package graph

import (
	"fmt"
	"time"

	"github.com/graphql-go/graphql"

	"github.com/notegraph/notegraph/internal/model"
	"github.com/notegraph/notegraph/internal/repository"
	"github.com/notegraph/notegraph/internal/service"
)

// Resolver carries the dependencies the schema's operations dispatch into.
type Resolver struct {
	Users repository.UserRepository
	Auth  service.AuthService
	Notes service.NoteService
}

// NewSchema builds the executable schema: object types, inputs, queries, and
// mutations wired to the resolver.
func NewSchema(r *Resolver) (graphql.Schema, error) {
	noteType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Note",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(model.Note).ID.String(), nil
				},
			},
			"description": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(model.Note).Description, nil
				},
			},
			"createdAt": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return formatTime(p.Source.(model.Note).CreatedAt), nil
				},
			},
		},
	})

	userType := graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return sourceUser(p).ID.String(), nil
				},
			},
			"name": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return sourceUser(p).Name, nil
				},
			},
			"email": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return sourceUser(p).Email, nil
				},
			},
			"createdAt": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return formatTime(sourceUser(p).CreatedAt), nil
				},
			},
			"updatedAt": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return formatTime(sourceUser(p).UpdatedAt), nil
				},
			},
		},
	})

	// User.notes resolves through the per-request dataloader: the returned
	// thunk defers execution until the whole pass has registered its keys,
	// so N users cost one notes query.
	userType.AddFieldConfig("notes", &graphql.Field{
		Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(noteType))),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			loaders, ok := LoadersFromCtx(p.Context)
			if !ok {
				return nil, errInternal
			}
			thunk := loaders.Notes.Load(p.Context, sourceUser(p).ID)
			return func() (interface{}, error) {
				notes, err := thunk()
				if err != nil {
					return nil, wrapErr(err)
				}
				return notes, nil
			}, nil
		},
	})

	authType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Auth",
		Fields: graphql.Fields{
			"token": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(model.Tokens).AccessToken, nil
				},
			},
		},
	})

	createUserInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "CreateUserInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"name":     &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"email":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"password": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	loginInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "LoginInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"email":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"password": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	createNoteInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "CreateNoteInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"description": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"profile": &graphql.Field{
				Description: "Current user profile",
				Type:        graphql.NewNonNull(userType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					u, err := r.currentUser(p)
					if err != nil {
						return nil, err
					}
					return u, nil
				},
			},
			"users": &graphql.Field{
				Description: "Get all users",
				Type:        graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(userType))),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					users, err := r.Users.List(p.Context)
					if err != nil {
						return nil, wrapErr(err)
					}
					return users, nil
				},
			},
		},
	})

	mutationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"createUser": &graphql.Field{
				Description: "Create a new user",
				Type:        graphql.NewNonNull(userType),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(createUserInput)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					in := p.Args["input"].(map[string]interface{})
					u, err := r.Auth.Register(p.Context,
						stringArg(in, "name"), stringArg(in, "email"), stringArg(in, "password"))
					if err != nil {
						return nil, wrapErr(err)
					}
					return u, nil
				},
			},
			"login": &graphql.Field{
				Description: "Authenticate User",
				Type:        graphql.NewNonNull(authType),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(loginInput)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					in := p.Args["input"].(map[string]interface{})
					tokens, _, err := r.Auth.Login(p.Context,
						stringArg(in, "email"), stringArg(in, "password"), ClientIPFromCtx(p.Context))
					if err != nil {
						return nil, wrapErr(err)
					}
					return tokens, nil
				},
			},
			"createNote": &graphql.Field{
				Description: "Create a new note",
				Type:        graphql.NewNonNull(graphql.Boolean),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(createNoteInput)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					u, err := r.currentUser(p)
					if err != nil {
						return nil, err
					}
					in := p.Args["input"].(map[string]interface{})
					if _, err := r.Notes.Create(p.Context, u.ID, stringArg(in, "description")); err != nil {
						return nil, wrapErr(err)
					}
					return true, nil
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    queryType,
		Mutation: mutationType,
	})
}

// currentUser is the authorization gate for operations requiring a session:
// the request context must carry a subject and the subject's user must still
// exist.
func (r *Resolver) currentUser(p graphql.ResolveParams) (*model.User, error) {
	sub, ok := SubjectFromCtx(p.Context)
	if !ok {
		return nil, errUnauthorized
	}
	u, err := r.Users.GetByID(p.Context, sub)
	if err != nil {
		return nil, wrapErr(err)
	}
	return u, nil
}

// sourceUser tolerates both value and pointer sources: list resolvers yield
// model.User values, single-object resolvers yield *model.User. Anything else
// is a wiring mistake and panics like a failed type assertion would.
func sourceUser(p graphql.ResolveParams) *model.User {
	switch u := p.Source.(type) {
	case *model.User:
		return u
	case model.User:
		return &u
	default:
		panic(fmt.Sprintf("user field resolved against %T source", p.Source))
	}
}

func stringArg(in map[string]interface{}, key string) string {
	s, _ := in[key].(string)
	return s
}

// formatTime renders database timestamps as RFC 3339 strings in UTC.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
