// Command leakmon scans directory trees for leaked secrets and PII, once or
// continuously, and keeps an audit trail of finding transitions.
package main
