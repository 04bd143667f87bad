package ui

import "github.com/alhariq/mahkah/pkg/types"

// strings holds the localized kiosk copy for one language.
type uiStrings struct {
	Slogan       string
	Tagline      string
	Start        string
	SetupTitle   string
	NamePrompt   string
	TypePrompt   string
	Next         string
	UploadTitle  string
	UploadHint   string
	CreateStory  string
	Generating   string
	SavePlant    string
	Nickname     string
	Library      string
	NoPlants     string
	FunFact      string
	Question     string
	Status       string
	UpdateStatus string
	Back         string
	Home         string
	Quit         string

	ErrNotAPlant string
	ErrBusy      string
	ErrOffline   string
	ErrGeneric   string

	VisitorTypes map[types.VisitorType]string
	Statuses     map[types.PlantStatus]string
}

var translations = map[types.Language]uiStrings{
	types.LangArabic: {
		Slogan:       "محكاة، حكاية كل نبتة",
		Tagline:      "مهرجان الحريق للحمضيات",
		Start:        "ابدأ الرحلة",
		SetupTitle:   "عرّفنا بنفسك",
		NamePrompt:   "ما اسمك؟",
		TypePrompt:   "من أنت؟",
		Next:         "التالي",
		UploadTitle:  "صوّر نبتتك",
		UploadHint:   "أدخل مسار صورة النبتة",
		CreateStory:  "اصنع الحكاية",
		Generating:   "نحيك حكاية نبتتك...",
		SavePlant:    "احفظ في مكتبتي",
		Nickname:     "سمِّ نبتتك",
		Library:      "مكتبة نباتاتي",
		NoPlants:     "لا توجد نباتات محفوظة بعد",
		FunFact:      "هل تعلم؟",
		Question:     "سؤال للتأمل",
		Status:       "مرحلة النمو",
		UpdateStatus: "حدّث المرحلة",
		Back:         "رجوع",
		Home:         "الرئيسية",
		Quit:         "خروج",
		ErrNotAPlant: "عذراً، هذه الصورة لا تحتوي على نبتة! 🌱 يرجى تصوير نبتة أو شجرة.",
		ErrBusy:      "الخدمة مزدحمة حالياً، يرجى المحاولة بعد قليل",
		ErrOffline:   "تعذر الوصول إلى الخدمة، تأكد من الاتصال وحاول مجدداً",
		ErrGeneric:   "حدث خطأ غير متوقع، حاول مرة أخرى",
		VisitorTypes: map[types.VisitorType]string{
			types.VisitorChild:   "طفل مستكشف",
			types.VisitorFamily:  "عائلة",
			types.VisitorTourist: "زائر",
		},
		Statuses: map[types.PlantStatus]string{
			types.StatusSeed:  "بذرة",
			types.StatusGrow:  "نمو",
			types.StatusBloom: "إزهار",
			types.StatusFruit: "إثمار",
		},
	},
	types.LangEnglish: {
		Slogan:       "Mahkah, every plant has a story",
		Tagline:      "Al-Hariq Citrus Festival",
		Start:        "Start the journey",
		SetupTitle:   "Tell us about yourself",
		NamePrompt:   "What is your name?",
		TypePrompt:   "Who are you?",
		Next:         "Next",
		UploadTitle:  "Photograph your plant",
		UploadHint:   "Enter the path to a plant photo",
		CreateStory:  "Create the story",
		Generating:   "Weaving your plant's story...",
		SavePlant:    "Save to my library",
		Nickname:     "Name your plant",
		Library:      "My plant library",
		NoPlants:     "No plants saved yet",
		FunFact:      "Did you know?",
		Question:     "Something to ponder",
		Status:       "Growth stage",
		UpdateStatus: "Update stage",
		Back:         "Back",
		Home:         "Home",
		Quit:         "Quit",
		ErrNotAPlant: "Sorry, that photo doesn't show a plant! 🌱 Please photograph a plant or tree.",
		ErrBusy:      "The service is busy right now, please try again in a moment.",
		ErrOffline:   "Could not reach the service. Check the connection and try again.",
		ErrGeneric:   "Something went wrong, please try again.",
		VisitorTypes: map[types.VisitorType]string{
			types.VisitorChild:   "Young explorer",
			types.VisitorFamily:  "Family",
			types.VisitorTourist: "Visitor",
		},
		Statuses: map[types.PlantStatus]string{
			types.StatusSeed:  "Seed",
			types.StatusGrow:  "Growing",
			types.StatusBloom: "Blooming",
			types.StatusFruit: "Fruiting",
		},
	},
}

// tr returns the strings table for lang, falling back to Arabic.
func tr(lang types.Language) uiStrings {
	if t, ok := translations[lang]; ok {
		return t
	}
	return translations[types.LangArabic]
}
