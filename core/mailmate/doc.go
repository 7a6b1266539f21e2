// Package mailmate implements the MailMate side of the bundle contract: the
// email context passed through MM_* environment variables and stdin, and the
// action documents printed back on stdout.
package mailmate
