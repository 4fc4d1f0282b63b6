package export

import (
	"fmt"
	"strings"
)

// texEscape rewrites LaTeX reserved characters in a single pass, so the
// replacement text of one escape is never re-escaped by another.
func texEscape(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\textbackslash{}`)
		case '{', '}', '#', '$', '%', '&', '_':
			b.WriteByte('\\')
			b.WriteRune(r)
		case '^':
			b.WriteString(`\textasciicircum{}`)
		case '~':
			b.WriteString(`\textasciitilde{}`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

const texDocument = `\documentclass[12pt]{article}
\usepackage[utf8]{inputenc}
\usepackage[margin=1in]{geometry}
\usepackage{fancyhdr}

\title{%s}
\author{Notepad Export}
\date{%s}

\pagestyle{fancy}
\fancyhf{}
\rhead{\thepage}
\lhead{%s}

\begin{document}

\maketitle

\section*{Content}
%s

\vfill

\section*{Metadata}
\begin{itemize}
    \item Created: %s
    \item Last Updated: %s
    \item Categories: %s
\end{itemize}

\end{document}`

func renderLaTeX(req Request) ([]byte, error) {
	title := texEscape(req.Title)
	doc := fmt.Sprintf(texDocument,
		title,
		req.CreatedAt.Format("January 2, 2006"),
		title,
		texEscape(req.Doc.PlainText()),
		stamp(req.CreatedAt),
		stamp(req.UpdatedAt),
		texEscape(strings.Join(req.Categories, ", ")),
	)
	return []byte(doc), nil
}
