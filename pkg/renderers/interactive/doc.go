// Package interactive renders the registration form as a full-screen
// bubbletea program. Moving focus away from a field blurs it, typing changes
// it, and Enter on the last field or the submit button submits. Each input
// sits in a lipgloss border that turns red while the field is invalid, with
// the message on its own line beneath.
package interactive
