package bot

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Message keys double as the English text.
const (
	msgStart          = "Hello %s! Send me a YouTube link."
	msgFriend         = "friend"
	msgHelp           = "Just send me a YouTube link and I will extract the audio and send it back as an MP3 file."
	msgInvalidLink    = "Please send a valid YouTube link, or reply to a message that contains one."
	msgProcessing     = "🎵 Processing your request..."
	msgUploading      = "📤 Uploading the audio file..."
	msgExtractFailed  = "❌ Error: could not download the audio from that link."
	msgNoOutput       = "❌ Error: no file was downloaded."
	msgTooLarge       = "❌ Error: the file is too large (over %s)."
	msgGenericFailure = "❌ Error: something went wrong while sending the audio."
	msgApology        = "Sorry! Something went wrong. Please try again."
)

var khmer = language.Make("km")

func init() {
	for key, text := range map[string]string{
		msgStart:          "សួស្ដី %s ផ្ញើតំណភ្ជាប់ YouTube មកខ្ញុំ",
		msgFriend:         "មិត្តភក្តិ",
		msgHelp:           "គ្រាន់តែផ្ញើតំណភ្ជាប់ YouTube មកខ្ញុំ ហើយខ្ញុំនឹងដកយកអូឌីយ៉ូ និងផ្ញើជាឯកសារ MP3 មកវិញ។",
		msgInvalidLink:    "សូមផ្ញើតំណភ្ជាប់ YouTube ត្រឹមត្រូវ ឬឆ្លើយតបទៅកាន់សារដែលមានតំណនោះ។",
		msgProcessing:     "🎵 កំពុងដំណើរការសំណើរបស់អ្នក...",
		msgUploading:      "📤 កំពុងផ្ទុកឯកសារអូឌីយ៉ូ...",
		msgExtractFailed:  "❌ កំហុស៖ មិនអាចទាញយកអូឌីយ៉ូពីតំណនោះបានទេ។",
		msgNoOutput:       "❌ កំហុស៖ គ្មានឯកសារបានទាញយកទេ។",
		msgTooLarge:       "❌ កំហុស៖ ឯកសារធំពេក (លើសពី %s)។",
		msgGenericFailure: "❌ កំហុស៖ មានបញ្ហាក្នុងការផ្ញើអូឌីយ៉ូ។",
		msgApology:        "សូមអភ័យទោស! មានបញ្ហាបន្តិចបន្តួច។ សូមព្យាយាមម្តងទៀត។",
	} {
		if err := message.SetString(khmer, key, text); err != nil {
			panic(err)
		}
	}
}

// newPrinter returns a printer for lang. Unknown or empty tags print English.
func newPrinter(lang string) *message.Printer {
	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.English
	}
	return message.NewPrinter(tag)
}
