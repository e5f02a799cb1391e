// Package drive wraps the Google Drive API for file search and content
// retrieval, including export of Google-native documents to text.
package drive
