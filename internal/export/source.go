package export

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Source-code carrier formats: a small program in the target language that
// prints the note. The note text travels inside string literals, so each
// renderer escapes per its target grammar.

var (
	cEscaper  = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)
	pyEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	jsEscaper = strings.NewReplacer(`\`, `\\`, "`", "\\`", "${", `\${`)
)

const cProgram = `/*
 * %s
 * Generated on %s
 * Original created: %s
 */

#include <stdio.h>
#include <stdlib.h>

int main() {
    printf("%s\n");
    printf("%s\n\n");

    printf("%s\n\n");

    printf("---\n");
    printf("Created: %s\n");
    printf("Last Updated: %s\n");

    return 0;
}`

func renderC(req Request) ([]byte, error) {
	title := cEscaper.Replace(req.Title)
	program := fmt.Sprintf(cProgram,
		req.Title,
		stamp(req.ExportedAt),
		stamp(req.CreatedAt),
		title,
		strings.Repeat("=", len(req.Title)),
		cEscaper.Replace(req.Doc.PlainText()),
		stamp(req.CreatedAt),
		stamp(req.UpdatedAt),
	)
	return []byte(program), nil
}

const pyProgram = `#!/usr/bin/env python3
"""
%s
Generated on %s
Original created: %s
"""

def main():
    title = "%s"
    content = """%s"""

    print(title)
    print("=" * len(title))
    print()
    print(content)
    print()
    print("---")
    print("Created: %s")
    print("Last Updated: %s")

if __name__ == "__main__":
    main()`

func renderPython(req Request) ([]byte, error) {
	program := fmt.Sprintf(pyProgram,
		req.Title,
		stamp(req.ExportedAt),
		stamp(req.CreatedAt),
		pyEscaper.Replace(req.Title),
		pyEscaper.Replace(req.Doc.PlainText()),
		stamp(req.CreatedAt),
		stamp(req.UpdatedAt),
	)
	return []byte(program), nil
}

const jsProgram = `/**
 * %s
 * Generated on %s
 * Original created: %s
 */

const noteData = {
    title: %s,
    content: ` + "`%s`" + `,
    createdAt: "%s",
    updatedAt: "%s",
    categories: %s
};

function displayNote() {
    console.log(noteData.title);
    console.log("=".repeat(noteData.title.length));
    console.log();
    console.log(noteData.content);
    console.log();
    console.log("---");
    console.log("Created: " + new Date(noteData.createdAt).toLocaleString());
    console.log("Last Updated: " + new Date(noteData.updatedAt).toLocaleString());
}

if (typeof module !== 'undefined' && module.exports) {
    displayNote();
    module.exports = noteData;
}`

func renderJavaScript(req Request) ([]byte, error) {
	title, err := jsonLiteral(req.Title)
	if err != nil {
		return nil, err
	}
	categories := req.Categories
	if categories == nil {
		categories = []string{}
	}
	list, err := jsonLiteral(categories)
	if err != nil {
		return nil, err
	}
	program := fmt.Sprintf(jsProgram,
		req.Title,
		stamp(req.ExportedAt),
		stamp(req.CreatedAt),
		title,
		jsEscaper.Replace(req.Doc.PlainText()),
		iso(req.CreatedAt),
		iso(req.UpdatedAt),
		list,
	)
	return []byte(program), nil
}

const asmProgram = `; %s
; Generated on %s
; Original created: %s

section .data
    title db %s, 0
    content db %s, 0
    newline db 10, 0

section .text
    global _start

_start:
    ; Print title
    mov eax, 4          ; sys_write
    mov ebx, 1          ; stdout
    mov ecx, title      ; message
    mov edx, %d         ; length
    int 0x80

    ; Print newline
    mov eax, 4
    mov ebx, 1
    mov ecx, newline
    mov edx, 1
    int 0x80

    ; Print content
    mov eax, 4
    mov ebx, 1
    mov ecx, content
    mov edx, %d
    int 0x80

    ; Exit program
    mov eax, 1          ; sys_exit
    xor ebx, ebx        ; exit status
    int 0x80`

func renderAssembly(req Request) ([]byte, error) {
	plain := req.Doc.PlainText()
	program := fmt.Sprintf(asmProgram,
		req.Title,
		stamp(req.ExportedAt),
		stamp(req.CreatedAt),
		asmString(req.Title),
		asmString(plain),
		len(req.Title),
		len(plain),
	)
	return []byte(program), nil
}

const nasmProgram = `; %s
; NASM Assembly - Generated on %s

%%define SYS_WRITE 4
%%define SYS_EXIT  1
%%define STDOUT    1

section .data
    title: db %s, 10, 0
    title_len equ $ - title

    content: db %s, 10, 0
    content_len equ $ - content

    footer: db '---', 10, %s, 10, 0
    footer_len equ $ - footer

section .text
    global _start

_start:
    ; Write title
    mov eax, SYS_WRITE
    mov ebx, STDOUT
    mov ecx, title
    mov edx, title_len
    int 0x80

    ; Write content
    mov eax, SYS_WRITE
    mov ebx, STDOUT
    mov ecx, content
    mov edx, content_len
    int 0x80

    ; Write footer
    mov eax, SYS_WRITE
    mov ebx, STDOUT
    mov ecx, footer
    mov edx, footer_len
    int 0x80

    ; Exit
    mov eax, SYS_EXIT
    xor ebx, ebx
    int 0x80`

func renderNASM(req Request) ([]byte, error) {
	program := fmt.Sprintf(nasmProgram,
		req.Title,
		stamp(req.ExportedAt),
		asmString(req.Title),
		asmString(req.Doc.PlainText()),
		asmString("Created: "+stamp(req.CreatedAt)),
	)
	return []byte(program), nil
}

// jsonLiteral renders v as a JSON value, which is also a valid JavaScript
// literal for strings and string arrays.
func jsonLiteral(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// asmString renders text as a db operand list. Single-quoted assembler
// strings carry no escapes, so embedded quotes switch to a double-quoted
// chunk and newlines become literal byte 10 operands.
func asmString(s string) string {
	var parts []string
	for li, line := range strings.Split(s, "\n") {
		if li > 0 {
			parts = append(parts, "10")
		}
		for ci, chunk := range strings.Split(line, "'") {
			if ci > 0 {
				parts = append(parts, `"'"`)
			}
			if chunk != "" {
				parts = append(parts, "'"+chunk+"'")
			}
		}
	}
	if len(parts) == 0 {
		return "''"
	}
	return strings.Join(parts, ", ")
}
