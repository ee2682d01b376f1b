package catalog

// staticLessons is the built-in curriculum. Ids must stay unique and must
// not use the daily- prefix.
var staticLessons = []Lesson{
	{
		ID:          "l1",
		Title:       "Chào hỏi & Giới thiệu",
		GermanTitle: "Begrüßung & Vorstellung",
		Description: "Bắt đầu những bước đầu tiên với cách chào hỏi và giới thiệu bản thân tự nhiên.",
		Category:    CategoryConversation,
		Level:       LevelA1,
		Content: []Section{
			{
				Section: "Cách chào hỏi thông dụng",
				Text:    "Người Đức rất coi trọng sự chào hỏi. Tùy thời điểm mà chúng ta có các câu khác nhau.",
				Examples: []Example{
					{De: "Hallo!", Vi: "Xin chào!"},
					{De: "Guten Morgen!", Vi: "Chào buổi sáng!"},
					{De: "Guten Tag!", Vi: "Chào buổi ngày (11h-18h)!"},
					{De: "Guten Abend!", Vi: "Chào buổi tối!"},
				},
			},
			{
				Section: "Giới thiệu bản thân",
				Text:    "Dùng \"Ich heiße...\" hoặc \"Ich bin...\" để nói tên, \"Ich komme aus...\" để nói quê hương.",
				Examples: []Example{
					{De: "Ich heiße Minh.", Vi: "Tôi tên là Minh."},
					{De: "Ich komme aus Vietnam.", Vi: "Tôi đến từ Việt Nam."},
					{De: "Freut mich!", Vi: "Rất vui được gặp bạn!"},
				},
			},
		},
		Exercises: []Exercise{
			{
				ID:            "e1-1",
				Question:      "Câu nào dùng để chào vào lúc 8 giờ sáng?",
				Options:       []string{"Guten Tag", "Guten Morgen", "Guten Abend", "Gute Nacht"},
				CorrectAnswer: "Guten Morgen",
				Explanation:   "Guten Morgen dùng cho buổi sáng sớm.",
			},
			{
				ID:            "e1-2",
				Question:      "Bạn muốn nói \"Tôi đến từ Việt Nam\". Câu nào đúng?",
				Options:       []string{"Ich heiße Vietnam.", "Ich komme aus Vietnam.", "Ich bin in Vietnam.", "Freut mich, Vietnam."},
				CorrectAnswer: "Ich komme aus Vietnam.",
				Explanation:   "\"Ich komme aus...\" dùng để nói bạn đến từ đâu.",
			},
		},
	},
	{
		ID:          "l2",
		Title:       "Ngôi xưng: Sie hay du?",
		GermanTitle: "Siezen und Duzen",
		Description: "Khi nào dùng \"Sie\" trang trọng và khi nào dùng \"du\" thân mật.",
		Category:    CategoryGrammar,
		Level:       LevelA1,
		Content: []Section{
			{
				Section: "Trang trọng và thân mật",
				Text:    "\"Sie\" dùng với người lạ, đồng nghiệp và người lớn tuổi. \"du\" dùng với bạn bè, gia đình và trẻ em.",
				Examples: []Example{
					{De: "Wie heißen Sie?", Vi: "Ông/bà tên là gì?"},
					{De: "Wie heißt du?", Vi: "Bạn tên là gì?"},
					{De: "Können Sie mir helfen?", Vi: "Ông/bà có thể giúp tôi không?"},
				},
			},
			{
				Section: "Chia động từ",
				Text:    "Với \"Sie\" động từ giữ nguyên dạng nguyên thể, với \"du\" động từ thường thêm đuôi -st.",
				Examples: []Example{
					{De: "Sie kommen", Vi: "Ông/bà đến"},
					{De: "du kommst", Vi: "bạn đến"},
				},
			},
		},
		Exercises: []Exercise{
			{
				ID:            "e2-1",
				Question:      "Bạn hỏi tên một người lạ trên tàu. Câu nào phù hợp?",
				Options:       []string{"Wie heißt du?", "Wie heißen Sie?", "Wer bist du?", "Was machst du?"},
				CorrectAnswer: "Wie heißen Sie?",
				Explanation:   "Với người lạ, hãy dùng \"Sie\" trang trọng.",
			},
			{
				ID:            "e2-2",
				Question:      "Chọn dạng đúng: \"du ___ aus Hanoi.\"",
				Options:       []string{"komme", "kommen", "kommst", "kommt"},
				CorrectAnswer: "kommst",
				Explanation:   "Ngôi \"du\" thêm đuôi -st: du kommst.",
			},
		},
	},
	{
		ID:          "l5",
		Title:       "Tại nhà hàng",
		GermanTitle: "Im Restaurant",
		Description: "Cách gọi món, hỏi giá và thanh toán khi đi ăn ngoài.",
		Category:    CategoryConversation,
		Level:       LevelA2,
		Content: []Section{
			{
				Section: "Gọi đồ ăn",
				Text:    "Sử dụng cấu trúc lịch sự \"Ich möchte...\"",
				Examples: []Example{
					{De: "Die Speisekarte, bitte!", Vi: "Cho tôi xem thực đơn!"},
					{De: "Ich möchte ein Bier.", Vi: "Tôi muốn một cốc bia."},
				},
			},
		},
		Exercises: []Exercise{
			{
				ID:            "e5-1",
				Question:      "Khi muốn thanh toán, bạn nói gì?",
				Options:       []string{"Hallo", "Danke", "Zahlen, bitte", "Guten Appetit"},
				CorrectAnswer: "Zahlen, bitte",
				Explanation:   "Zahlen là động từ trả tiền.",
			},
		},
	},
	{
		ID:          "l9",
		Title:       "Mua sắm đồ dùng",
		GermanTitle: "Einkaufen gehen",
		Description: "Học cách hỏi giá, thử đồ và mặc cả (nếu có thể) tại siêu thị Đức.",
		Category:    CategoryVocabulary,
		Level:       LevelA1,
		Content: []Section{
			{
				Section: "Hỏi giá tiền",
				Text:    "Cấu trúc \"Was kostet...?\" hoặc \"Wie viel kostet...?\"",
				Examples: []Example{
					{De: "Was kostet das?", Vi: "Cái này giá bao nhiêu?"},
					{De: "Das ist zu teuer.", Vi: "Cái này đắt quá."},
					{De: "Das ist billig.", Vi: "Cái này rẻ."},
				},
			},
		},
		Exercises: []Exercise{
			{
				ID:            "e9-1",
				Question:      "Để hỏi giá một món đồ, bạn nói gì?",
				Options:       []string{"Wer ist das?", "Was kostet das?", "Wie geht es?", "Wo ist das?"},
				CorrectAnswer: "Was kostet das?",
				Explanation:   "Was kostet dùng để hỏi giá tiền.",
			},
		},
	},
	{
		ID:          "l10",
		Title:       "Sức khỏe & Cơ thể",
		GermanTitle: "Gesundheit & Körper",
		Description: "Cách diễn đạt cơn đau và nói chuyện với bác sĩ khi bạn cảm thấy không khỏe.",
		Category:    CategoryVocabulary,
		Level:       LevelA2,
		Content: []Section{
			{
				Section: "Các bộ phận cơ thể",
				Text:    "Quan trọng nhất là cấu trúc \"Ich habe ...schmerzen\"",
				Examples: []Example{
					{De: "Ich habe Kopfschmerzen.", Vi: "Tôi bị đau đầu."},
					{De: "Mein Bauch tut weh.", Vi: "Bụng tôi bị đau."},
					{De: "Gute Besserung!", Vi: "Chúc mau khỏe!"},
				},
			},
		},
		Exercises: []Exercise{
			{
				ID:            "e10-1",
				Question:      "Câu nào dùng để chúc ai đó mau khỏe?",
				Options:       []string{"Guten Appetit", "Gute Besserung", "Viel Glück", "Herzlichen Glückwunsch"},
				CorrectAnswer: "Gute Besserung",
				Explanation:   "Gute Besserung là lời chúc sức khỏe.",
			},
		},
	},
	{
		ID:          "l11",
		Title:       "Du lịch & Phương tiện",
		GermanTitle: "Reisen & Verkehr",
		Description: "Đặt vé tàu, hỏi đường và các phương tiện công cộng tại Đức.",
		Category:    CategoryConversation,
		Level:       LevelA2,
		Content: []Section{
			{
				Section: "Tại nhà ga (Bahnhof)",
				Text:    "Hệ thống tàu của Đức (DB) rất phức tạp nhưng thú vị.",
				Examples: []Example{
					{De: "Eine Fahrkarte nach Berlin, bitte.", Vi: "Cho tôi một vé đi Berlin."},
					{De: "Hat der Zug Verspätung?", Vi: "Tàu có bị trễ không?"},
					{De: "Gleis 4", Vi: "Đường ray số 4"},
				},
			},
		},
		Exercises: []Exercise{
			{
				ID:            "e11-1",
				Question:      "\"Trễ giờ\" trong tiếng Đức là gì?",
				Options:       []string{"Pünktlich", "Verspätung", "Schnell", "Langsam"},
				CorrectAnswer: "Verspätung",
				Explanation:   "Verspätung là sự chậm trễ.",
			},
		},
	},
	{
		ID:          "l12",
		Title:       "Môi trường & Rác thải",
		GermanTitle: "Umwelt & Mülltrennung",
		Description: "Người Đức rất yêu môi trường. Học cách phân loại rác đúng chuẩn \"Đức\".",
		Category:    CategoryCulture,
		Level:       LevelB1,
		Content: []Section{
			{
				Section: "Phân loại rác (Mülltrennung)",
				Text:    "Mỗi loại rác có một màu thùng riêng biệt.",
				Examples: []Example{
					{De: "Biomüll", Vi: "Rác hữu cơ (thùng nâu)"},
					{De: "Altpapier", Vi: "Giấy cũ (thùng xanh dương)"},
					{De: "Plastik / Gelber Sack", Vi: "Nhựa (túi vàng)"},
				},
			},
		},
		Exercises: []Exercise{
			{
				ID:            "e12-1",
				Question:      "Thùng rác màu xanh dương thường chứa gì?",
				Options:       []string{"Thức ăn thừa", "Chai nhựa", "Giấy vụn", "Pin hỏng"},
				CorrectAnswer: "Giấy vụn",
				Explanation:   "Altpapier dành cho giấy và carton.",
			},
		},
	},
}
