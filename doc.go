// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package bodyx provides a consumable byte-payload abstraction built on a
// pull-based chunk stream, with exactly-once full and incremental reads and
// lossless duplication (tee).
//
// Core pieces
//   - ByteStream: single-producer ordered chunk sequence with at most one
//     active reader. Producers call Push, then exactly one of Close or Fail.
//   - StreamReader: delivers exactly one of OnChunk/OnClose/OnError per Read
//     to a ReadRequest, possibly on the producer's call stack.
//   - Body: pairs a ByteStream with an optional pre-materialized Source and
//     an optional known Length. FullyRead assembles the whole payload;
//     IncrementallyRead delivers one callback per chunk.
//   - TaskQueue: a FIFO task destination. Every consumer-visible callback is
//     queued there, never run on the stream driver's stack.
//
// Delivery model
//
// The stream driver may invoke ReadRequest callbacks from an arbitrary,
// possibly reentrant call stack. Body read operations therefore marshal all
// consumer callbacks through a TaskDestination: per read session, chunk
// callbacks arrive in producer order, followed by exactly one end-of-body or
// error callback, FIFO on the destination.
//
// Chunk buffers handed to OnChunk are only valid for the duration of the
// callback; the producer may reuse them immediately after. Body read paths
// copy defensively before queueing.
//
// Duplication
//
// Body.Clone tees the underlying stream into two branches so that two
// independent consumers observe the same bytes. Cloning requires that no
// reader is active (ErrTeeLocked otherwise) and mutates neither body on
// failure.
package bodyx
