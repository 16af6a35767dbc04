// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package badger

import (
	"context"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/ncerr/core"
	"github.com/poiesic/ncerr/storage"
)

// ErrorRepository implements storage.ErrorRepository for BadgerDB.
type ErrorRepository struct {
	backend *Backend
	seq     *badger.Sequence
}

var _ storage.ErrorRepository = (*ErrorRepository)(nil)

// NewErrorRepository creates a new ErrorRepository.
func NewErrorRepository(backend *Backend) (*ErrorRepository, error) {
	seq, err := backend.GetSequence(sessionErrorSeq)
	if err != nil {
		return nil, err
	}

	return &ErrorRepository{
		backend: backend,
		seq:     seq,
	}, nil
}

// Close releases the attachment sequence.
func (r *ErrorRepository) Close() error {
	return r.seq.Release()
}

// AttachError appends perr to the error list of session dst.
func (r *ErrorRepository) AttachError(ctx context.Context, dst core.SessionID, perr *core.ProtocolError) error {
	if err := r.checkOpen(ctx); err != nil {
		return err
	}
	if err := core.ValidateProtocolError(perr); err != nil {
		return err
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		if err := r.append(tx, dst, storage.MarshalProtocolError(perr)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// CopyErrors appends every error of session src to session dst, byte for byte.
func (r *ErrorRepository) CopyErrors(ctx context.Context, src, dst core.SessionID) error {
	if err := r.checkOpen(ctx); err != nil {
		return err
	}
	if src == dst {
		return nil
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		values, err := readSessionValues(tx, src)
		if err != nil {
			return err
		}
		for _, value := range values {
			if err := r.append(tx, dst, value); err != nil {
				return err
			}
		}
		if len(values) > 0 {
			r.backend.logger.Debug("copied session errors", "src", src, "dst", dst, "count", len(values))
		}
		return tx.Commit()
	}, true)
}

// GetErrors returns the errors of a session in attachment order.
func (r *ErrorRepository) GetErrors(ctx context.Context, session core.SessionID) ([]*core.ProtocolError, error) {
	if err := r.checkOpen(ctx); err != nil {
		return nil, err
	}

	errs := []*core.ProtocolError{}
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		values, err := readSessionValues(tx, session)
		if err != nil {
			return err
		}
		for _, value := range values {
			perr, err := storage.UnmarshalProtocolError(value)
			if err != nil {
				return err
			}
			errs = append(errs, perr)
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	return errs, nil
}

// ClearErrors removes every error of a session.
func (r *ErrorRepository) ClearErrors(ctx context.Context, session core.SessionID) error {
	if err := r.checkOpen(ctx); err != nil {
		return err
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		var keys [][]byte
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = makePartialSessionErrorKey(session)
		iter := tx.NewIterator(opts)
		for iter.Rewind(); iter.Valid(); iter.Next() {
			keys = append(keys, iter.Item().KeyCopy(nil))
		}
		iter.Close()

		for _, key := range keys {
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// append stores an already serialized error under the next sequence number.
func (r *ErrorRepository) append(tx *badger.Txn, dst core.SessionID, value []byte) error {
	seq, err := r.seq.Next()
	if err != nil {
		return err
	}
	return tx.Set(makeSessionErrorKey(dst, seq), value)
}

func (r *ErrorRepository) checkOpen(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if r.backend.IsClosed() {
		return storage.ErrStorageClosed
	}
	return nil
}

// readSessionValues returns copies of the serialized errors of a session in key order.
func readSessionValues(tx *badger.Txn, session core.SessionID) ([][]byte, error) {
	var values [][]byte

	opts := badger.DefaultIteratorOptions
	opts.Prefix = makePartialSessionErrorKey(session)
	iter := tx.NewIterator(opts)
	defer iter.Close()

	for iter.Rewind(); iter.Valid(); iter.Next() {
		value, err := iter.Item().ValueCopy(nil)
		if err != nil {
			return nil, err
		}
		values = append(values, value)
	}

	return values, nil
}
