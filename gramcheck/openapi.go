package gramcheck

const openAPISpec = `{
  "openapi": "3.0.3",
  "info": {
    "title": "gramcheck API",
    "description": "Spelling/grammar correction with word-level change classification and n-gram plausibility checks",
    "version": "1.0.0"
  },
  "paths": {
    "/v1/correct": {
      "post": {
        "summary": "Correct",
        "description": "Runs the configured correction backend and aligns the original against the corrected text.",
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": { "$ref": "#/components/schemas/CorrectRequest" },
              "examples": {
                "basic": { "value": { "text": "I hve an aple." } },
                "positional": { "value": { "text": "cat sat down", "policy": "positional" } },
                "timeout": { "value": { "text": "a long text...", "timeout": 15 } }
              }
            }
          }
        },
        "responses": {
          "200": {
            "description": "Aligned result",
            "content": {
              "application/json": {
                "schema": { "$ref": "#/components/schemas/Result" },
                "example": {
                  "original": "I hve it",
                  "corrected": "I have it",
                  "backend": "dictionary",
                  "policy": "diff",
                  "spans": [
                    { "kind": "unchanged", "original": "I", "corrected": "I" },
                    { "kind": "substituted", "original": "hve", "corrected": "have",
                      "detail": [ { "kind": "unchanged", "text": "h" }, { "kind": "added", "text": "a" }, { "kind": "unchanged", "text": "ve" } ] },
                    { "kind": "unchanged", "original": "it", "corrected": "it" }
                  ],
                  "counts": { "unchanged": 2, "removed": 0, "added": 0, "substituted": 1 },
                  "editDistance": 1,
                  "charCount": 8
                }
              }
            }
          },
          "400": { "description": "Invalid JSON, empty text or unknown policy" },
          "500": { "description": "Backend failure" },
          "504": { "description": "Backend did not answer in time" }
        }
      }
    },
    "/v1/diff": {
      "post": {
        "summary": "Diff",
        "description": "Aligns two given texts without running a backend.",
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": { "$ref": "#/components/schemas/DiffRequest" },
              "example": { "original": "the cat sat", "corrected": "the cat has sat" }
            }
          }
        },
        "responses": {
          "200": { "description": "Aligned result", "content": { "application/json": { "schema": { "$ref": "#/components/schemas/Result" } } } },
          "400": { "description": "Invalid JSON or unknown policy" }
        }
      }
    },
    "/v1/check-grammar": {
      "post": {
        "summary": "Check grammar",
        "description": "Flags every n-word window of the text that never occurs in the reference corpus.",
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": { "$ref": "#/components/schemas/GrammarRequest" },
              "example": { "text": "The cat ran." }
            }
          }
        },
        "responses": {
          "200": { "description": "Flagged windows", "content": { "application/json": { "schema": { "$ref": "#/components/schemas/GrammarResult" } } } },
          "400": { "description": "Invalid JSON or n < 0" },
          "503": { "description": "No reference corpus configured" }
        }
      }
    },
    "/v1/custom-words": {
      "get": {
        "summary": "List custom words",
        "responses": { "200": { "description": "Stored words", "content": { "application/json": { "example": { "words": ["kafka"] } } } } }
      }
    },
    "/v1/custom-word": {
      "post": {
        "summary": "Add custom word",
        "description": "Marks a word as correctly spelled for every later request.",
        "requestBody": {
          "required": true,
          "content": { "application/json": { "example": { "word": "kafka" } } }
        },
        "responses": {
          "201": { "description": "Added" },
          "400": { "description": "Missing word" },
          "503": { "description": "Custom words are not configured" }
        }
      }
    },
    "/v1/custom-word/{word}": {
      "delete": {
        "summary": "Remove custom word",
        "parameters": [ { "name": "word", "in": "path", "required": true, "schema": { "type": "string" } } ],
        "responses": { "200": { "description": "Removed" }, "503": { "description": "Custom words are not configured" } }
      }
    },
    "/health": {
      "get": {
        "summary": "Health",
        "responses": {
          "200": {
            "description": "Service is up",
            "content": { "application/json": { "example": { "status": "ok", "service": "gramcheck", "backend": "nara", "modelLoaded": false } } }
          }
        }
      }
    }
  },
  "components": {
    "schemas": {
      "CorrectRequest": {
        "type": "object",
        "required": ["text"],
        "properties": {
          "text":    { "type": "string" },
          "policy":  { "type": "string", "enum": ["diff", "lcs", "positional", "zip"], "description": "Alignment policy (default diff)" },
          "timeout": { "type": "integer", "description": "Timeout in seconds" }
        }
      },
      "DiffRequest": {
        "type": "object",
        "required": ["original", "corrected"],
        "properties": {
          "original":  { "type": "string" },
          "corrected": { "type": "string" },
          "policy":    { "type": "string", "enum": ["diff", "lcs", "positional", "zip"] }
        }
      },
      "GrammarRequest": {
        "type": "object",
        "required": ["text"],
        "properties": {
          "text": { "type": "string" },
          "n":    { "type": "integer", "description": "Window size; 0 or missing uses the model's" }
        }
      },
      "Result": {
        "type": "object",
        "properties": {
          "original":     { "type": "string" },
          "corrected":    { "type": "string" },
          "backend":      { "type": "string" },
          "policy":       { "type": "string" },
          "spans":        { "type": "array", "items": { "$ref": "#/components/schemas/EditSpan" } },
          "counts":       { "$ref": "#/components/schemas/Counts" },
          "editDistance": { "type": "integer", "description": "Levenshtein(original, corrected) in runes" },
          "charCount":    { "type": "integer", "description": "Rune length of original" }
        }
      },
      "EditSpan": {
        "type": "object",
        "properties": {
          "kind":      { "type": "string", "enum": ["unchanged", "removed", "added", "substituted"] },
          "original":  { "type": "string" },
          "corrected": { "type": "string" },
          "detail":    { "type": "array", "items": { "$ref": "#/components/schemas/CharOp" } }
        }
      },
      "CharOp": {
        "type": "object",
        "properties": {
          "kind": { "type": "string", "enum": ["unchanged", "removed", "added"] },
          "text": { "type": "string" }
        }
      },
      "Counts": {
        "type": "object",
        "properties": {
          "unchanged":   { "type": "integer" },
          "removed":     { "type": "integer" },
          "added":       { "type": "integer" },
          "substituted": { "type": "integer" }
        }
      },
      "GrammarResult": {
        "type": "object",
        "properties": {
          "text":        { "type": "string" },
          "n":           { "type": "integer" },
          "windowCount": { "type": "integer" },
          "flagged": {
            "type": "array",
            "items": {
              "type": "object",
              "properties": {
                "window": { "type": "array", "items": { "type": "string" } },
                "start":  { "type": "integer", "description": "Rune offset" },
                "end":    { "type": "integer", "description": "Rune offset (exclusive)" }
              }
            }
          }
        }
      }
    }
  }
}`

const redocHTML = `<!DOCTYPE html>
<html>
<head>
  <title>gramcheck API Docs</title>
  <meta charset="utf-8"/>
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <link href="https://fonts.googleapis.com/css?family=Montserrat:300,400,700|Roboto:300,400,700" rel="stylesheet">
  <style>body { margin: 0; padding: 0; }</style>
</head>
<body>
  <redoc spec-url="/openapi.json" expand-responses="200" hide-download-button></redoc>
  <script src="https://cdn.jsdelivr.net/npm/redoc@latest/bundles/redoc.standalone.js"></script>
</body>
</html>`
