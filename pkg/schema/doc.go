// Package schema loads booking form documents (YAML or JSON) into validated
// model.FormSchema values. Field order in the document is the form order.
package schema
