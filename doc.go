/*

Package kanban holds the error model shared by the kanban board's
binary format and its project store.

The store keeps one file per project. Each file is named after the
project's random 128-bit identifier and holds the whole project
document in a small versioned binary format.

Vocabulary:

- id: 16 random bytes that name a project; rendered as 32 uppercase hex
  characters when used as a file name
- header: version byte, id, name and description; enough to list
  projects without decoding their boards
- short string: string with a single-byte length prefix
- long string: string with a leb128 length prefix
- leb128: little-endian base-128 unsigned integer, 7 payload bits per
  byte plus a continuation flag in bit 7
- data dir: the application data directory supplied by the host; project
  files live in data dir + "/projects"
- canpath: canonical path of a project file relative to the data dir,
  i.e. "projects/<id>"

Layout:

- wire: byte cursor (Reader) and byte sink (Writer), leb128 and string
  length rules
- db: document codec and the project store
- cmd/kb: command line front end

*/

package kanban
