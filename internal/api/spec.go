package api

import (
	"net/http"

	"github.com/celestina-app/celestina/internal/config"
	"github.com/celestina-app/celestina/pkg/openapi"
)

// buildSpec assembles the OpenAPI document for the verification endpoints.
func buildSpec(cfg *config.Config) *openapi.Spec {
	spec := openapi.NewSpec(cfg.API.OpenAPI.Title, cfg.Version)
	spec.SetDescription(cfg.API.OpenAPI.Description)
	spec.AddServer(cfg.API.BasePath)

	spec.Components.AddSchemas(map[string]*openapi.Schema{
		"VerifyCommand": {
			Type:     "object",
			Required: []string{"sender_id", "recipient_id"},
			Properties: map[string]*openapi.Schema{
				"sender_id":          {Type: "string", Description: "Message sender identity"},
				"recipient_id":       {Type: "string", Description: "Message recipient identity"},
				"message":            {Type: "string", Description: "Outgoing message text"},
				"message_id":         {Type: "string", Description: "Client message identifier, defaults to pending"},
				"category":           {Type: "string", Description: "Interaction category, e.g. intimate or meetup"},
				"context":            {Type: "string", Enum: []any{"chat", "request", "proposal"}},
				"recent_messages":    {Type: "array", Items: &openapi.Schema{Type: "string"}},
				"relationship_stage": {Type: "string", Description: "Relationship stage between the parties"},
			},
		},
		"BatchRequest": {
			Type:     "object",
			Required: []string{"messages"},
			Properties: map[string]*openapi.Schema{
				"messages": {Type: "array", Items: openapi.SchemaRef("VerifyCommand")},
			},
		},
		"Analysis": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"consent_level":         {Type: "string", Enum: []any{"explicit", "implicit", "ambiguous", "negative"}},
				"confidence":            {Type: "integer", Description: "Classification confidence, 0 to 100"},
				"keywords":              {Type: "array", Items: &openapi.Schema{Type: "string"}},
				"context":               {Type: "string", Enum: []any{"chat", "request", "proposal"}},
				"requires_confirmation": {Type: "boolean"},
				"suggested_action":      {Type: "string", Enum: []any{"approve", "review", "warn", "block"}},
				"explanation":           {Type: "string", Description: "Human-readable decision summary"},
				"timestamp":             {Type: "string", Format: "date-time"},
			},
		},
		"Verification": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":           {Type: "string", Format: "uuid"},
				"message_id":   {Type: "string"},
				"user_id":      {Type: "string"},
				"recipient_id": {Type: "string"},
				"analysis":     openapi.SchemaRef("Analysis"),
				"verified":     {Type: "boolean"},
				"verified_at":  {Type: "string", Format: "date-time"},
				"created_at":   {Type: "string", Format: "date-time"},
			},
		},
		"SearchRequest": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"page":             {Type: "integer", Example: 1},
				"page_size":        {Type: "integer", Example: 20},
				"search":           {Type: "string"},
				"sort":             {Type: "string"},
				"user_id":          {Type: "string"},
				"recipient_id":     {Type: "string"},
				"consent_level":    {Type: "array", Items: &openapi.Schema{Type: "string"}},
				"suggested_action": {Type: "array", Items: &openapi.Schema{Type: "string"}},
				"verified":         {Type: "boolean"},
			},
		},
		"VerificationPage": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"data":        {Type: "array", Items: openapi.SchemaRef("Verification")},
				"total":       {Type: "integer"},
				"page":        {Type: "integer"},
				"page_size":   {Type: "integer"},
				"total_pages": {Type: "integer"},
			},
		},
	})

	spec.Paths["/verifications"] = &openapi.PathItem{
		Post: &openapi.Operation{
			Summary:     "Verify a message before sending",
			Tags:        []string{"verifications"},
			RequestBody: openapi.RequestBodyJSON("VerifyCommand", true),
			Responses: map[int]*openapi.Response{
				http.StatusCreated:    openapi.ResponseJSON("Verification decision", "Verification"),
				http.StatusBadRequest: openapi.ResponseRef("BadRequest"),
			},
		},
		Get: &openapi.Operation{
			Summary: "List verifications",
			Tags:    []string{"verifications"},
			Parameters: []*openapi.Parameter{
				openapi.QueryParam("page", "integer", "Page number", false),
				openapi.QueryParam("page_size", "integer", "Results per page", false),
				openapi.QueryParam("search", "string", "Search explanation and message id", false),
				openapi.QueryParam("sort", "string", "Sort fields, prefix with - for descending", false),
				openapi.QueryParam("user_id", "string", "Filter by sender", false),
				openapi.QueryParam("recipient_id", "string", "Filter by recipient", false),
				openapi.QueryParam("consent_level", "string", "Comma-separated consent levels", false),
				openapi.QueryParam("suggested_action", "string", "Comma-separated suggested actions", false),
				openapi.QueryParam("verified", "boolean", "Filter by verified flag", false),
			},
			Responses: map[int]*openapi.Response{
				http.StatusOK:                  openapi.ResponseJSON("Page of verifications", "VerificationPage"),
				http.StatusInternalServerError: openapi.ResponseRef("ServerError"),
			},
		},
	}

	spec.Paths["/verifications/batch"] = &openapi.PathItem{
		Post: &openapi.Operation{
			Summary:     "Verify a batch of messages",
			Tags:        []string{"verifications"},
			RequestBody: openapi.RequestBodyJSON("BatchRequest", true),
			Responses: map[int]*openapi.Response{
				http.StatusCreated: {
					Description: "Verification decisions in input order",
					Content: map[string]*openapi.MediaType{
						"application/json": {
							Schema: &openapi.Schema{
								Type:  "array",
								Items: openapi.SchemaRef("Verification"),
							},
						},
					},
				},
				http.StatusBadRequest: openapi.ResponseRef("BadRequest"),
			},
		},
	}

	spec.Paths["/verifications/search"] = &openapi.PathItem{
		Post: &openapi.Operation{
			Summary:     "Search verifications",
			Tags:        []string{"verifications"},
			RequestBody: openapi.RequestBodyJSON("SearchRequest", true),
			Responses: map[int]*openapi.Response{
				http.StatusOK:                  openapi.ResponseJSON("Page of verifications", "VerificationPage"),
				http.StatusBadRequest:          openapi.ResponseRef("BadRequest"),
				http.StatusInternalServerError: openapi.ResponseRef("ServerError"),
			},
		},
	}

	spec.Paths["/verifications/history/{userId}"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "Recent verification history for a user",
			Tags:    []string{"verifications"},
			Parameters: []*openapi.Parameter{
				openapi.PathParam("userId", "string", "Sender identity"),
				openapi.QueryParam("limit", "integer", "Maximum records, defaults to 50", false),
			},
			Responses: map[int]*openapi.Response{
				http.StatusOK: {
					Description: "Verification records, newest first",
					Content: map[string]*openapi.MediaType{
						"application/json": {
							Schema: &openapi.Schema{
								Type:  "array",
								Items: openapi.SchemaRef("Verification"),
							},
						},
					},
				},
				http.StatusBadRequest: openapi.ResponseRef("BadRequest"),
			},
		},
	}

	spec.Paths["/verifications/{id}"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "Find a verification by id",
			Tags:    []string{"verifications"},
			Parameters: []*openapi.Parameter{
				openapi.PathParam("id", "string", "Verification UUID"),
			},
			Responses: map[int]*openapi.Response{
				http.StatusOK:       openapi.ResponseJSON("Verification record", "Verification"),
				http.StatusNotFound: openapi.ResponseRef("NotFound"),
			},
		},
	}

	return spec
}
