package constants

// Record statuses shared by files and messages.
const (
	StatusActive  = "active"
	StatusDeleted = "deleted"
)

// File kinds derived from the display name extension.
const (
	KindImage        = "image"
	KindVideo        = "video"
	KindAudio        = "audio"
	KindPDF          = "pdf"
	KindDocument     = "document"
	KindSpreadsheet  = "spreadsheet"
	KindPresentation = "presentation"
	KindArchive      = "archive"
	KindFile         = "file"
)

// Message kinds.
const (
	MessageText  = "text"
	MessageFile  = "file"
	MessageImage = "image"
)

// Fan-out event names, one per mutating operation.
const (
	EventFileUploaded   = "file_uploaded"
	EventFileDeleted    = "file_deleted"
	EventFileExtended   = "file_expiry_extended"
	EventMessageCreated = "new_message"
	EventMessageDeleted = "message_deleted"
)

// Fallbacks applied when a request omits the field.
const (
	DefaultChannel    = "default"
	DefaultActorName  = "anonymous"
	DefaultExtendDays = 15
)

// kindByExtension maps a lowercased extension to its file kind.
var kindByExtension = map[string]string{
	"jpg": KindImage, "jpeg": KindImage, "png": KindImage,
	"gif": KindImage, "bmp": KindImage, "webp": KindImage,

	"mp4": KindVideo, "avi": KindVideo, "mov": KindVideo,
	"mkv": KindVideo, "wmv": KindVideo, "flv": KindVideo,

	"mp3": KindAudio, "wav": KindAudio, "flac": KindAudio,
	"aac": KindAudio, "m4a": KindAudio,

	"pdf": KindPDF,

	"doc": KindDocument, "docx": KindDocument,

	"xls": KindSpreadsheet, "xlsx": KindSpreadsheet,

	"ppt": KindPresentation, "pptx": KindPresentation,

	"zip": KindArchive, "rar": KindArchive, "7z": KindArchive,
	"tar": KindArchive, "gz": KindArchive,
}

// KindForExtension classifies a lowercased extension; unknown
// extensions fall back to the generic file kind.
func KindForExtension(ext string) string {
	if kind, ok := kindByExtension[ext]; ok {
		return kind
	}
	return KindFile
}

// PreviewableKind reports whether a kind may be streamed inline.
// Everything else must be downloaded as an attachment.
func PreviewableKind(kind string) bool {
	return kind == KindImage || kind == KindVideo || kind == KindAudio
}
