package mcpserver

// QuerySyntaxContract documents the filter query language for LLM
// consumers. The search_notes tool accepts exactly this syntax.
const QuerySyntaxContract = `# Raido Filter Search Syntax

A query is a whitespace-separated list of clauses. All clauses must match
(implicit AND). Quote any clause part containing spaces: ` + "`" + `"reading list"` + "`" + `.
Prefix any clause with ` + "`" + `-` + "`" + ` to negate it.

## Clauses

| Clause | Meaning |
|---|---|
| ` + "`" + `report` + "`" + ` | display name contains "report" (case-insensitive) |
| ` + "`" + `#work` + "`" + ` | tagged ` + "`" + `work` + "`" + ` or any descendant such as ` + "`" + `work/projects` + "`" + ` |
| ` + "`" + `#` + "`" + ` | has at least one tag |
| ` + "`" + `.status` + "`" + ` | has a non-empty ` + "`" + `status` + "`" + ` property |
| ` + "`" + `.status=active` + "`" + ` | property equals value (case-insensitive) |
| ` + "`" + `."Reading Status"="In Progress"` + "`" + ` | quoted keys/values with spaces |
| ` + "`" + `@today` + "`" + ` | modified today (also: yesterday, last7d, last30d, thisweek, thismonth) |
| ` + "`" + `@2026-02` + "`" + ` | modified in February 2026 (also ` + "`" + `@2026` + "`" + `, ` + "`" + `@2026-W05` + "`" + `, ` + "`" + `@2026-Q2` + "`" + `, ` + "`" + `@2026-02-07` + "`" + `) |
| ` + "`" + `@2026-01-01..2026-03-31` + "`" + ` | inclusive range; either side may be omitted |
| ` + "`" + `@c:2026` + "`" + ` | ` + "`" + `c:` + "`" + ` targets the created date, ` + "`" + `m:` + "`" + ` the modified date |
| ` + "`" + `folder:proj` + "`" + ` | folder path contains "proj" |
| ` + "`" + `folder:/inbox` + "`" + ` | exactly the folder ` + "`" + `inbox` + "`" + ` (no subfolders) |
| ` + "`" + `ext:md` + "`" + ` | file extension (leading dot optional) |
| ` + "`" + `has:task` + "`" + ` | note contains at least one unfinished ` + "`" + `- [ ]` + "`" + ` task |

## AND / OR

When EVERY clause in the query is a tag or property clause, the literal
words ` + "`" + `AND` + "`" + ` and ` + "`" + `OR` + "`" + ` act as boolean connectors, with OR binding
loosest: ` + "`" + `#work AND .status=active OR #personal` + "`" + ` means
(work AND active) OR personal.

In any other query (one containing name terms, date, folder, or
extension clauses) ` + "`" + `AND` + "`" + ` and ` + "`" + `OR` + "`" + ` are searched as ordinary words.
` + "`" + `#work OR ext:md` + "`" + ` therefore looks for the word "OR" in note names.

## Errors

There are none. A clause that does not parse (for example ` + "`" + `@bogus` + "`" + `)
is searched literally as a name term, and an empty query matches every
note.
`
