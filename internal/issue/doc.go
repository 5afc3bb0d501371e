// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// ActionableError carries the failed operation, the resource involved and
// remediation hints. Issue holds longer Markdown guidance rendered with
// glamour when clpconfig reports a failure on a terminal.
package issue
