package docstore

import "log/slog"

// Condition identifies what the read-time recovery procedure detected.
type Condition int

const (
	// ConditionPrimaryCorrupt means the primary file was present but
	// unparseable while a backup existed.
	ConditionPrimaryCorrupt Condition = iota + 1

	// ConditionRotationInterrupted means the primary file was missing while
	// a backup existed: a previous write stopped between rotation and
	// install.
	ConditionRotationInterrupted

	// ConditionBackupUnusable means the backup failed to read or parse while
	// already recovering, so no usable copy remains.
	ConditionBackupUnusable
)

func (c Condition) String() string {
	switch c {
	case ConditionPrimaryCorrupt:
		return "primary-corrupt"
	case ConditionRotationInterrupted:
		return "rotation-interrupted"
	case ConditionBackupUnusable:
		return "backup-unusable"
	default:
		return "unknown"
	}
}

// Action identifies what the recovery procedure did about a condition.
type Action int

const (
	// ActionQuarantinedPrimary means the unparseable primary was renamed to
	// the .corrupt slot for forensic inspection.
	ActionQuarantinedPrimary Action = iota + 1

	// ActionPromotedBackup means the backup was renamed back to the primary
	// slot.
	ActionPromotedBackup

	// ActionRestoredFromBackup means the value recovered from the backup was
	// re-installed through the normal write protocol.
	ActionRestoredFromBackup

	// ActionNone means recovery gave up without changing any slot.
	ActionNone
)

func (a Action) String() string {
	switch a {
	case ActionQuarantinedPrimary:
		return "quarantined-primary"
	case ActionPromotedBackup:
		return "promoted-backup"
	case ActionRestoredFromBackup:
		return "restored-from-backup"
	case ActionNone:
		return "none"
	default:
		return "unknown"
	}
}

// RecoveryEvent is a structured diagnostic record emitted once per recovery
// step. Successful recovery is silent to the caller; these events are the
// only externally visible trace.
type RecoveryEvent struct {
	Key       string
	Condition Condition
	Action    Action
	Err       error
}

// Observer receives recovery events. Implementations must not block; they
// run inline with the read path.
type Observer interface {
	ObserveRecovery(ev RecoveryEvent)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(RecoveryEvent)

func (f ObserverFunc) ObserveRecovery(ev RecoveryEvent) { f(ev) }

// logObserver is the default observer. Recovery steps log at Warn,
// unrecoverable outcomes at Error.
type logObserver struct {
	logger *slog.Logger
}

func (o logObserver) ObserveRecovery(ev RecoveryEvent) {
	attrs := []any{
		"key", ev.Key,
		"condition", ev.Condition.String(),
		"action", ev.Action.String(),
	}
	if ev.Err != nil {
		attrs = append(attrs, "error", ev.Err)
	}
	if ev.Condition == ConditionBackupUnusable {
		o.logger.Error("document recovery failed", attrs...)
		return
	}
	o.logger.Warn("document recovered", attrs...)
}
