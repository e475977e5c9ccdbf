/*

Package db stores kanban projects, one binary file per project.

Vocabulary:

- data dir: base directory supplied by a PathProvider
- abspath: absolute path on hard disk
- relpath: path relative to the data dir
- canpath: canonical path; always "projects/<id>"
- id: 32 uppercase hex characters naming a project file
- header: version byte, raw id, name and description
- document: header followed by the board count and the boards

A document is laid out as:

	version      1 byte, always FileVersion
	id           16 raw bytes
	name         short string
	description  leb128 string
	boards       leb128 count, then each board

	board:  name (short string), leb128 list count, lists
	list:   title (short string), 3 color bytes, leb128 item count,
	        items (leb128 strings)

*/

package db
