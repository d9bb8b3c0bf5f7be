// Package update decides whether an install run needs to download anything
// at all, by comparing the recorded version of the installed binary against
// the resolved target release.
//
// It is deliberately free of network and filesystem concerns so the
// decision table can be tested exhaustively.
package update
