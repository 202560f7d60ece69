// Copyright 2016 Google Inc. All Rights Reserved.
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

package runtime

import "sync"

// threadState holds per-goroutine state that would otherwise need to be
// threaded through every call. Trimmed from the teacher's threadState to
// what the type core actually needs: the currently set exception and the
// repr re-entrancy guard.
type threadState struct {
	reprState map[*Object]bool
	excValue  *BaseException
}

func newThreadState() *threadState {
	return &threadState{}
}

// recursiveMutex is a typical reentrant lock, ported from the teacher's
// threading.go. The TypeFactory uses one of these as its construction lock:
// fromSpec can re-enter itself (a field initializer on the primary class may
// trigger another fromSpec call on the same goroutine) but two different
// goroutines must never hold it concurrently.
type recursiveMutex struct {
	mutex   sync.Mutex
	owner   *threadState
	count   int
	ownerMu sync.Mutex
}

func (m *recursiveMutex) Lock(f *Frame) {
	m.ownerMu.Lock()
	owner := m.owner
	m.ownerMu.Unlock()
	if owner != f.threadState {
		m.mutex.Lock()
		m.ownerMu.Lock()
		m.owner = f.threadState
		m.ownerMu.Unlock()
	}
	m.count++
}

func (m *recursiveMutex) Unlock(f *Frame) {
	m.ownerMu.Lock()
	if m.owner != f.threadState {
		m.ownerMu.Unlock()
		logFatal("recursiveMutex.Unlock: frame did not match that passed to Lock")
		return
	}
	m.ownerMu.Unlock()
	if m.count <= 0 {
		logFatal("recursiveMutex.Unlock: Unlock called too many times")
		return
	}
	m.count--
	if m.count == 0 {
		m.ownerMu.Lock()
		m.owner = nil
		m.ownerMu.Unlock()
		m.mutex.Unlock()
	}
}
