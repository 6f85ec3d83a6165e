// Package adminclient is the client-side core of the admin console: an
// HTTP client for the catalog API with normalized errors, a durable
// session store for the admin bearer token, an ordered catalog store with
// optimistic reordering, and form validation for the public enquiry
// forms.
package adminclient
