package knowledge

// DefaultCatalog returns the front-desk knowledge of the Hang Bac hostel in
// seeding order. The order matters: it breaks score ties during retrieval.
func DefaultCatalog() []Entry {
	return []Entry{
		{
			Category: "check_in",
			Topic:    "Check-in Policy",
			Content:  "Check-in time is 14:00 (2 PM). Early check-in is subject to availability and may incur additional charges. Please bring valid identification (passport or ID card) and payment is due at check-in. We accept cash (VND), credit cards (Visa, Mastercard), and bank transfers.",
			Keywords: "check-in check in arrival time 14:00 2pm early id identification payment",
		},
		{
			Category: "check_out",
			Topic:    "Check-out Policy",
			Content:  "Check-out time is 12:00 (noon). Late check-out is available until 15:00 (3 PM) for 50% of the daily rate. Express check-out is available - just leave your key at reception. Please settle any outstanding charges before departure.",
			Keywords: "check-out checkout departure leave 12:00 noon late express charges",
		},
		{
			Category: "cancellation",
			Topic:    "Cancellation Policy",
			Content:  "Free cancellation up to 24 hours before arrival date. Late cancellation or no-show will result in a charge of one night's accommodation. For group bookings (5+ rooms), different terms may apply.",
			Keywords: "cancel cancellation free 24 hours no-show charge group booking policy",
		},
		{
			Category: "payment",
			Topic:    "Payment Methods",
			Content:  "We accept Vietnamese Dong (VND) cash, major credit cards (Visa, Mastercard), and bank transfers. Foreign currency exchange is not available at the hotel. ATMs are located nearby on Hang Bac Street.",
			Keywords: "payment cash credit card visa mastercard bank transfer vnd currency atm",
		},
		{
			Category: "transportation",
			Topic:    "Taxi and Transportation",
			Content:  "Airport taxi service to Noi Bai Airport: 280,000 VND (fixed rate). City taxi rides typically cost 50,000-100,000 VND. Book through reception for guaranteed rates. Grab taxi app is also reliable. Bus #17 connects to airport (cheaper option).",
			Keywords: "taxi airport noi bai transportation 280000 grab bus city reception book",
		},
		{
			Category: "amenities",
			Topic:    "Hotel Amenities",
			Content:  "Free WiFi throughout property, air conditioning in all rooms, hot water 24/7, fresh towels daily, complimentary toiletries. Shared kitchen facilities, comfortable common area, secure luggage storage, and laundry service available.",
			Keywords: "wifi internet air conditioning hot water towels toiletries kitchen common area luggage laundry",
		},
		{
			Category: "location",
			Topic:    "Location and Nearby",
			Content:  "Located in the heart of Hanoi's Old Quarter on Hang Bac Street. Hoan Kiem Lake is 10 minutes walk. Dong Xuan Market 5 minutes walk. Weekend Night Market on weekends. Many restaurants, cafes, and shops within walking distance.",
			Keywords: "location old quarter hang bac hoan kiem lake dong xuan market weekend night market walking distance",
		},
		{
			Category: "attractions",
			Topic:    "Hanoi Attractions",
			Content:  "Hoan Kiem Lake (10 min walk) - beautiful lake, best visited early morning or evening. Temple of Literature (15 min taxi) - Vietnam's first university, 30,000 VND entry. Old Quarter narrow streets perfect for walking and shopping. Night market Friday-Sunday.",
			Keywords: "hoan kiem lake temple literature old quarter attractions walking shopping night market friday sunday",
		},
		{
			Category: "food",
			Topic:    "Local Food Recommendations",
			Content:  "Must try: Pho (noodle soup), Bun Cha (grilled pork with noodles), Banh Mi (Vietnamese sandwich). Hang Buom Street (2 minutes walk) has excellent local food. Typical meal costs 30,000-80,000 VND. Ask reception for specific restaurant recommendations.",
			Keywords: "food pho bun cha banh mi hang buom street local restaurant recommendations meal cost reception eat eating dinner lunch breakfast hungry where can good places dining",
		},
		{
			Category: "rules",
			Topic:    "House Rules",
			Content:  "Quiet hours: 22:00-08:00. No smoking indoors (smoking area available). No outside guests after 23:00. Please keep rooms clean and respect other guests. Report any issues to reception immediately.",
			Keywords: "quiet hours smoking guests rules clean respect reception issues report",
		},
		{
			Category: "emergency",
			Topic:    "Emergency Information",
			Content:  "Fire emergency: dial 114. Medical emergency: dial 115. Police: dial 113. Hotel emergency contact: reception 24/7. Nearest hospital: Bach Mai Hospital (15 min taxi). Emergency evacuation route posted in each room.",
			Keywords: "emergency fire medical police 114 115 113 hospital bach mai evacuation route reception",
		},
		{
			Category: "wifi",
			Topic:    "WiFi and Internet",
			Content:  "Free WiFi available throughout the hotel. Network name: 118HangBac_Guest. Password available at reception. High-speed internet suitable for work and streaming. Technical support available 24/7.",
			Keywords: "wifi internet free network password reception high-speed work streaming technical support",
		},
	}
}
