package services

import "errors"

// Failure modes surfaced to the HTTP layer. Handlers map these to status
// codes with errors.Is; anything else is treated as a persistence failure.
var (
	// ErrNoEligibleParticipants is returned when a draw is attempted on a
	// prize whose range matches no active ticketed participant. Recoverable,
	// no state change.
	ErrNoEligibleParticipants = errors.New("no eligible participants in range for prize")

	// ErrAllPrizesDrawn is the sequencer's terminal state. Not a failure.
	ErrAllPrizesDrawn = errors.New("all prizes have been drawn")

	// ErrWinnerNotFound is returned when an undo targets a nonexistent winner.
	ErrWinnerNotFound = errors.New("winner not found")

	// ErrPrizeAlreadyDrawn guards both re-draws and deletion of drawn prizes.
	ErrPrizeAlreadyDrawn = errors.New("prize has already been drawn")

	// ErrParticipantHasWon guards deletion of a participant referenced by a
	// winner record.
	ErrParticipantHasWon = errors.New("participant is referenced by a winner record")

	// ErrConfirmationRequired is returned when a full reset is requested
	// without the exact confirmation keyword.
	ErrConfirmationRequired = errors.New("reset requires the exact confirmation keyword")

	// ErrDuplicateCedula and friends reject writes that would break
	// uniqueness before anything reaches the persistence layer.
	ErrDuplicateCedula = errors.New("a participant with this cedula already exists")
	ErrDuplicateTicket = errors.New("a participant with this ticket number already exists")
)
