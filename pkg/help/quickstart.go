package help

const QuickstartYAML = `# docsum Quick Start

commands:
  extract: |
    docsum extract report.pdf
    docsum extract --full report.pdf          # whole text, no preview
    cat notes.txt | docsum extract --name notes.txt -

  summarize: |
    docsum summarize report.pdf                # medium length
    docsum summarize --length short report.pdf
    docsum summarize --length long --out summary.txt report.pdf

  shell: |
    docsum shell report.pdf
    docsum> upload
    docsum> show
    docsum> more
    docsum> length long
    docsum> summarize
    docsum> copy summary.txt

  health: |
    docsum health

summary_lengths:
  short: "A few sentences"
  medium: "A paragraph or two (default)"
  long: "A detailed summary"

output_formats:
  text: "Human readable (default)"
  json: "One JSON document on stdout"
  yaml: "One YAML document on stdout"

configuration:
  precedence: "defaults < --config file < DOCSUM_BASE_URL < flags"
  file_example: |
    base_url: https://summarizer.example.com
    timeout: 2m
    preview_limit: 300
    default_length: medium

workflow_rules:
  - "Extracted text previews the first 300 characters; 'Show More' reveals the rest"
  - "A new upload clears the extracted text and collapses the preview"
  - "The previous summary stays until a new one replaces it"
  - "Upload and summarize are refused while a request is in flight"
  - "Changing the length never re-runs a summary"

error_messages:
  unsupported_format: "❌ Could not extract text from this file type. Please upload PDF, DOC, or TXT."
  upload_failed: "❌ Upload failed. Please try again."
  summarization_failed: "❌ Summarization failed. Please try again."

error_behavior:
  - "Logs are JSON on stderr; --quiet keeps errors only"
  - "Exit codes: 0=success, 1=request failed, 2=bad input or configuration"
`
