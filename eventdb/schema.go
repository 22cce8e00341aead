// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package eventdb

const eventTableSchema = `
CREATE TABLE IF NOT EXISTS event (
	seq INTEGER NOT NULL,
	eventIndex INTEGER NOT NULL,
	slot INTEGER NOT NULL,
	name TEXT NOT NULL,
	subject BLOB(32) NOT NULL,
	actor BLOB(32) NOT NULL,
	amount INTEGER NOT NULL,
	PRIMARY KEY (seq, eventIndex)
);

CREATE INDEX IF NOT EXISTS slotIndex ON event(slot);
CREATE INDEX IF NOT EXISTS subjectIndex ON event(subject);
CREATE INDEX IF NOT EXISTS actorIndex ON event(actor);
CREATE INDEX IF NOT EXISTS nameIndex ON event(name);
`
