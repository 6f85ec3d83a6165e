// Package server wires the HTTP layer: an Echo instance, route
// registration, bearer-token auth for catalog mutations, and the JSON
// handlers for the public catalog, admin login, and enquiry endpoints.
package server
