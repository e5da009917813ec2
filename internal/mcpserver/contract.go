package mcpserver

// DocumentFormatContract describes the Markdown document format articles
// are authored in. Exposed to MCP clients as the skald://document-format
// resource.
const DocumentFormatContract = `# Skald Article Document Format

Every article document served by skald MUST follow this structure.

## Structure

` + "```" + `markdown
---
title: Human-readable title         # REQUIRED – display name, slug source
date: 2025-01-15                    # REQUIRED – publication date
author: Jane Doe                    # REQUIRED – author display name
tags:                               # OPTIONAL – YAML list, used for filtering
  - tag-one
  - tag-two
summary: One-line description.      # OPTIONAL – shown in article lists
slug: custom-slug                   # OPTIONAL – overrides the derived slug
---

Body text in standard Markdown. GFM tables, task lists and autolinks are
supported; raw HTML is not rendered.
` + "```" + `

## Rules

1. **YAML frontmatter is mandatory.** The ` + "`" + `---` + "`" + ` fences must be the first
   thing in the file (no leading blank lines).
2. **` + "`" + `title` + "`" + `, ` + "`" + `date` + "`" + ` and ` + "`" + `author` + "`" + ` are required.** Documents missing any
   of them are skipped at load time.
3. **Dates** are ISO-8601: ` + "`" + `2025-01-15` + "`" + ` or a full RFC 3339 timestamp.
4. **Tags** are lowercase, kebab-case (e.g. ` + "`" + `side-projects` + "`" + `).
5. **Slugs** are derived from the title (lowercased, accents folded,
   punctuation dropped) unless the ` + "`" + `slug` + "`" + ` field overrides it. Slugs must
   be unique; a document repeating an existing slug is skipped.
6. **Excerpt and reading time are derived** from the body. Do not author them.
7. **Encoding** is UTF-8 with a trailing newline.

## Images & Assets

- Store files in the ` + "`" + `assets/` + "`" + ` directory of the content root (flat, no
  sub-folders).
- Reference them with the absolute path: ` + "`" + `![description](/assets/diagram.png)` + "`" + `.

## Example

` + "```" + `markdown
---
title: Building a Static Blog in Go
date: 2025-01-20
author: Halvard Eriksen
tags:
  - go
  - web
summary: How this site loads and serves its articles.
---

# Building a Static Blog in Go

The engine fetches Markdown documents, derives slugs and excerpts, and
serves everything from an in-memory index.

![Request flow](/assets/request-flow.png)
` + "```" + `
`
