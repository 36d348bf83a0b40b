// Package handover models the hand-off of a batch between pipeline steps:
// the receiving operator's verify-or-report decision (BatchReceiptVerification)
// and the transit record bracketing the physical move (BatchReceiptLog).
package handover
