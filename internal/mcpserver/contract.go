package mcpserver

// MarkupFormatContract describes the canonical markup format that LLM
// consumers should follow when creating or updating note bodies.
const MarkupFormatContract = `# Notepad Markup Format Contract

Every note body stored in Notepad MUST use this restricted HTML-like tag set.

## Block tags

` + "```" + `html
<p>paragraph text</p>
<h1>top-level heading</h1>
<h2>section heading</h2>
<blockquote>quoted text</blockquote>
<pre>preformatted / code text</pre>
<ul><li>bullet item</li><li>another item</li></ul>
<ol><li>numbered item</li></ol>
` + "```" + `

## Inline tags

` + "```" + `html
<strong>bold</strong> <em>italic</em> <u>underlined</u>
` + "```" + `

Inline tags nest freely inside any block: ` + "`" + `<p><strong><em>bold italic</em></strong></p>` + "`" + `.

## Rules

1. **Only the tags above.** Any other tag is ignored by the parser; do not
   emit scripts, styles, images, tables, or links.
2. **Every block is closed.** ` + "`" + `<p>text` + "`" + ` without ` + "`" + `</p>` + "`" + ` still parses, but
   well-formed markup round-trips byte-identically.
3. **Entities.** Escape literal characters as ` + "`" + `&amp;` + "`" + `, ` + "`" + `&lt;` + "`" + `, ` + "`" + `&gt;` + "`" + `.
   The parser also accepts ` + "`" + `&quot;` + "`" + ` and ` + "`" + `&#39;` + "`" + `.
4. **List items.** Each ` + "`" + `<li>` + "`" + ` is one item; do not put block tags inside items.
5. **No attributes.** Tags carry no attributes; ` + "`" + `<p class="x">` + "`" + ` is invalid.
6. **Encoding** is UTF-8.

## Example

` + "```" + `html
<h1>Weekly standup</h1>
<p>Attendees: <strong>Alice</strong>, Bob.</p>
<h2>Action items</h2>
<ul><li>Review the design doc</li><li>Update the roadmap</li></ul>
<blockquote>Ship by Friday.</blockquote>
` + "```" + `
`
