package docstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/hupe1980/sitestore/fs"
)

// readMode controls how far a read may escalate when a slot fails.
//
// The mode is passed explicitly at every call site so the no-further-recovery
// contract of quarantine reads is visible in the code, not hidden in a
// trailing flag.
type readMode int

const (
	// readNormal allows the full recovery procedure on failure.
	readNormal readMode = iota

	// readQuarantine suppresses all backup fallback: the caller is already
	// recovering and a failure here is final. This is what prevents an
	// infinite read, quarantine, recover loop when both slots are bad.
	readQuarantine
)

// Read decodes the document stored under key into out.
//
// On a failed primary read it runs a branching recovery procedure: a
// present-but-unparseable primary is quarantined and the value restored
// from the backup; a missing primary with a live backup has the backup
// promoted back into place. Only when no branch yields a usable value does
// the caller see an error.
func (s *Store) Read(_ context.Context, key string, out any) error {
	if _, err := s.readSlot(s.primaryPath(key), out, readNormal); err != nil {
		return s.recover(key, out, err)
	}
	return nil
}

// readSlot reads and decodes a single filesystem slot. In readQuarantine
// mode any failure is mapped to ErrUnrecoverable because the caller has no
// fallback left.
func (s *Store) readSlot(name string, out any, mode readMode) ([]byte, error) {
	data, err := fs.ReadFile(s.fsys, name)
	if err == nil {
		if uerr := s.codec.Unmarshal(data, out); uerr != nil {
			err = &decodeError{name: name, err: uerr}
		}
	}
	if err != nil {
		if mode == readQuarantine {
			return nil, fmt.Errorf("%w: %w", ErrUnrecoverable, err)
		}
		return nil, err
	}
	return data, nil
}

// recover dispatches a failed primary read to the matching recovery branch.
// cause is the original failure and is surfaced verbatim when no branch
// applies.
func (s *Store) recover(key string, out any, cause error) error {
	if !fs.Exists(s.fsys, s.backupPath(key)) {
		// No backup: this is a genuine not-found, permission or corruption
		// error with nothing to fall back on.
		return s.surface(key, cause)
	}
	if fs.Exists(s.fsys, s.primaryPath(key)) {
		return s.recoverCorrupt(key, out, cause)
	}
	return s.recoverInterrupted(key, out)
}

// recoverCorrupt handles a present-but-unparseable primary with a live
// backup: quarantine the bad bytes, restore the value from the backup, and
// re-install it so the store self-heals.
func (s *Store) recoverCorrupt(key string, out any, cause error) error {
	// Keep the bad data for inspection. A failed rename is fatal: retrying
	// the read would hit the same corrupt primary again.
	if err := s.fsys.Rename(s.primaryPath(key), s.corruptPath(key)); err != nil {
		return fmt.Errorf("docstore: quarantine %q: %w", key, err)
	}
	s.obs.ObserveRecovery(RecoveryEvent{
		Key:       key,
		Condition: ConditionPrimaryCorrupt,
		Action:    ActionQuarantinedPrimary,
		Err:       cause,
	})

	data, err := s.readSlot(s.backupPath(key), out, readQuarantine)
	if err != nil {
		s.obs.ObserveRecovery(RecoveryEvent{
			Key:       key,
			Condition: ConditionBackupUnusable,
			Action:    ActionNone,
			Err:       err,
		})
		return fmt.Errorf("docstore: document %q: %w", key, err)
	}

	// Self-heal: re-install the recovered serialization through the normal
	// write protocol, which rotates the backup slot as usual.
	if err := s.writeRaw(key, data); err != nil {
		return err
	}
	s.obs.ObserveRecovery(RecoveryEvent{
		Key:       key,
		Condition: ConditionPrimaryCorrupt,
		Action:    ActionRestoredFromBackup,
	})
	return nil
}

// recoverInterrupted handles a missing primary with a live backup: a prior
// write completed its rotation but never installed the new value. Promote
// the backup and re-run a plain read, which cannot recurse because the
// backup slot is now empty.
func (s *Store) recoverInterrupted(key string, out any) error {
	if err := s.fsys.Rename(s.backupPath(key), s.primaryPath(key)); err != nil {
		return fmt.Errorf("docstore: promote backup for %q: %w", key, err)
	}
	s.obs.ObserveRecovery(RecoveryEvent{
		Key:       key,
		Condition: ConditionRotationInterrupted,
		Action:    ActionPromotedBackup,
	})

	if _, err := s.readSlot(s.primaryPath(key), out, readNormal); err != nil {
		return s.surface(key, err)
	}
	return nil
}

// surface translates an unrecovered failure into the caller-visible error.
func (s *Store) surface(key string, cause error) error {
	var de *decodeError
	if errors.As(cause, &de) {
		return fmt.Errorf("docstore: document %q: %w: %w", key, ErrCorrupt, cause)
	}
	return fmt.Errorf("docstore: read %q: %w", key, cause)
}
