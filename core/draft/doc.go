// Package draft is the reply drafter run by the MailMate bundle command.
//
// [Run] performs one invocation: it reads the email MailMate passes on the
// environment and stdin, selects the configured provider with
// [NewProvider], prompts it through [BuildPrompt], places the reply above
// the original with [ComposeBody] and returns the createMessage document.
// Every failure is logged and returned as a notify document instead, so the
// caller always has exactly one document to print.
package draft
