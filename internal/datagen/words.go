package datagen

var firstNames = []string{
	"James", "Mary", "Robert", "Patricia", "John", "Jennifer", "Michael", "Linda",
	"David", "Elizabeth", "William", "Barbara", "Richard", "Susan", "Joseph", "Jessica",
	"Thomas", "Sarah", "Charles", "Karen", "Daniel", "Nancy", "Matthew", "Betty",
	"Anthony", "Margaret", "Mark", "Sandra", "Steven", "Ashley", "Paul", "Emily",
	"Andrew", "Donna", "Joshua", "Michelle", "Kevin", "Carol", "Brian", "Amanda",
	"Olivia", "Noah", "Liam", "Emma", "Sofia", "Mateo", "Aisha", "Yuki",
}

var lastNames = []string{
	"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis",
	"Rodriguez", "Martinez", "Hernandez", "Lopez", "Gonzalez", "Wilson", "Anderson",
	"Thomas", "Taylor", "Moore", "Jackson", "Martin", "Lee", "Perez", "Thompson",
	"White", "Harris", "Sanchez", "Clark", "Ramirez", "Lewis", "Robinson", "Walker",
	"Young", "Allen", "King", "Wright", "Scott", "Torres", "Nguyen", "Hill",
	"Flores", "Green", "Adams", "Nelson", "Baker", "Hall", "Rivera", "Patel", "Kim",
}

var streetNames = []string{
	"Main", "Oak", "Pine", "Maple", "Cedar", "Elm", "Washington", "Lake", "Hill",
	"Park", "Sunset", "River", "Church", "Mill", "Forest", "Highland", "Meadow",
	"Spring", "Ridge", "Willow", "Chestnut", "Jefferson", "Lincoln", "Franklin",
}

var streetSuffixes = []string{
	"Street", "Avenue", "Road", "Lane", "Drive", "Court", "Way", "Boulevard", "Place",
}

var cities = []string{
	"Springfield", "Riverside", "Franklin", "Greenville", "Bristol", "Clinton",
	"Fairview", "Salem", "Madison", "Georgetown", "Arlington", "Ashland", "Dover",
	"Oxford", "Jackson", "Burlington", "Manchester", "Milton", "Newport", "Auburn",
	"Dayton", "Lexington", "Milford", "Winchester", "Kingston", "Hudson", "Marion",
}

var productAdjectives = []string{
	"Small", "Ergonomic", "Rustic", "Intelligent", "Gorgeous", "Incredible",
	"Fantastic", "Practical", "Sleek", "Awesome", "Generic", "Handcrafted",
	"Handmade", "Licensed", "Refined", "Unbranded", "Tasty", "Modern", "Elegant",
	"Luxurious", "Bespoke", "Recycled", "Oriental", "Electronic",
}

var productMaterials = []string{
	"Steel", "Wooden", "Concrete", "Plastic", "Cotton", "Granite", "Rubber",
	"Metal", "Soft", "Fresh", "Frozen", "Bronze", "Silk", "Ceramic", "Leather",
}

var productNouns = []string{
	"Chair", "Car", "Computer", "Keyboard", "Mouse", "Bike", "Ball", "Gloves",
	"Pants", "Shirt", "Table", "Shoes", "Hat", "Towels", "Soap", "Tuna", "Chicken",
	"Fish", "Cheese", "Bacon", "Pizza", "Salad", "Sausages", "Chips", "Lamp",
}

var descriptionVerbs = []string{
	"combines comfort with", "is designed for", "pairs well with", "delivers",
	"is built around", "brings together", "offers", "stands out with",
}

var descriptionEndings = []string{
	"everyday durability", "a streamlined look and feel", "premium performance",
	"long lasting quality", "a lightweight frame", "the needs of busy households",
	"outdoor adventures", "professional grade reliability", "modern living spaces",
}
