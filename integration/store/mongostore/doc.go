// Package mongostore persists email templates and themes in MongoDB.
//
// Templates live in the email_templates collection and themes in
// email_template_themes. Deletes are soft: a deleted flag plus deleted_at.
// Call EnsureIndexes once at startup to create the unique (key, language)
// index over live documents.
package mongostore
