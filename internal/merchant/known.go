// Package merchant resolves raw SMS merchant tokens into user-facing names
// and categories, and learns new mappings from user corrections.
package merchant

import "strings"

// Canonical category names used by the built-in knowledge base. Categories
// are per-user entities; these names are created on demand the first time a
// built-in match needs them.
const (
	CategoryDining        = "Dining"
	CategoryGroceries     = "Groceries"
	CategoryTransport     = "Transport"
	CategoryShopping      = "Shopping"
	CategoryEntertainment = "Entertainment"
	CategoryUtilities     = "Utilities"
	CategoryMedical       = "Medical"
	CategoryTravel        = "Travel"
	CategoryTransfer      = "Transfer"
	CategoryMisc          = "Miscellaneous"
)

// KnownMerchant is one entry of the built-in knowledge base.
type KnownMerchant struct {
	Name     string
	Category string
}

// knownMerchants maps lowercase keywords to normalized names and categories.
// Keyed on substrings because SMS tokens arrive with routing noise around
// the brand ("UPI-ZOMATO-ORDER", "ZOMATO LTD").
var knownMerchants = map[string]KnownMerchant{
	// Food delivery & dining
	"zomato":    {Name: "Zomato", Category: CategoryDining},
	"swiggy":    {Name: "Swiggy", Category: CategoryDining},
	"starbucks": {Name: "Starbucks", Category: CategoryDining},
	"dominos":   {Name: "Domino's", Category: CategoryDining},
	"mcdonald":  {Name: "McDonald's", Category: CategoryDining},
	"kfc":       {Name: "KFC", Category: CategoryDining},
	"pizza hut": {Name: "Pizza Hut", Category: CategoryDining},
	"haldiram":  {Name: "Haldiram's", Category: CategoryDining},
	"barbeque":  {Name: "Barbeque Nation", Category: CategoryDining},
	"cafe coffee day": {Name: "Cafe Coffee Day", Category: CategoryDining},

	// Groceries
	"bigbasket": {Name: "BigBasket", Category: CategoryGroceries},
	"blinkit":   {Name: "Blinkit", Category: CategoryGroceries},
	"zepto":     {Name: "Zepto", Category: CategoryGroceries},
	"dmart":     {Name: "DMart", Category: CategoryGroceries},
	"grofers":   {Name: "Grofers", Category: CategoryGroceries},
	"reliance fresh": {Name: "Reliance Fresh", Category: CategoryGroceries},
	"more supermarket": {Name: "More Supermarket", Category: CategoryGroceries},

	// Transport
	"uber":       {Name: "Uber", Category: CategoryTransport},
	"ola":        {Name: "Ola", Category: CategoryTransport},
	"rapido":     {Name: "Rapido", Category: CategoryTransport},
	"irctc":      {Name: "IRCTC", Category: CategoryTransport},
	"redbus":     {Name: "RedBus", Category: CategoryTransport},
	"indian oil": {Name: "Indian Oil", Category: CategoryTransport},
	"bharat petroleum": {Name: "Bharat Petroleum", Category: CategoryTransport},
	"fastag":     {Name: "FASTag", Category: CategoryTransport},

	// Shopping
	"amazon":   {Name: "Amazon", Category: CategoryShopping},
	"flipkart": {Name: "Flipkart", Category: CategoryShopping},
	"myntra":   {Name: "Myntra", Category: CategoryShopping},
	"ajio":     {Name: "AJIO", Category: CategoryShopping},
	"meesho":   {Name: "Meesho", Category: CategoryShopping},
	"nykaa":    {Name: "Nykaa", Category: CategoryShopping},
	"croma":    {Name: "Croma", Category: CategoryShopping},
	"decathlon": {Name: "Decathlon", Category: CategoryShopping},

	// Entertainment
	"netflix":  {Name: "Netflix", Category: CategoryEntertainment},
	"hotstar":  {Name: "Disney+ Hotstar", Category: CategoryEntertainment},
	"spotify":  {Name: "Spotify", Category: CategoryEntertainment},
	"bookmyshow": {Name: "BookMyShow", Category: CategoryEntertainment},
	"sonyliv":  {Name: "SonyLIV", Category: CategoryEntertainment},
	"pvr":      {Name: "PVR Cinemas", Category: CategoryEntertainment},

	// Utilities
	"jio":          {Name: "Jio", Category: CategoryUtilities},
	"airtel":       {Name: "Airtel", Category: CategoryUtilities},
	"vodafone":     {Name: "Vodafone Idea", Category: CategoryUtilities},
	"bses":         {Name: "BSES", Category: CategoryUtilities},
	"tata power":   {Name: "Tata Power", Category: CategoryUtilities},
	"bsnl":         {Name: "BSNL", Category: CategoryUtilities},

	// Medical
	"apollo":   {Name: "Apollo Pharmacy", Category: CategoryMedical},
	"pharmeasy": {Name: "PharmEasy", Category: CategoryMedical},
	"netmeds":  {Name: "Netmeds", Category: CategoryMedical},
	"1mg":      {Name: "Tata 1mg", Category: CategoryMedical},

	// Travel
	"makemytrip": {Name: "MakeMyTrip", Category: CategoryTravel},
	"goibibo":    {Name: "Goibibo", Category: CategoryTravel},
	"oyo":        {Name: "OYO", Category: CategoryTravel},
	"indigo":     {Name: "IndiGo", Category: CategoryTravel},
	"air india":  {Name: "Air India", Category: CategoryTravel},
	"cleartrip":  {Name: "Cleartrip", Category: CategoryTravel},
}

// categoryKeywords maps generic keywords to categories for fallback when no
// brand matched.
var categoryKeywords = map[string]string{
	"restaurant": CategoryDining,
	"cafe":       CategoryDining,
	"coffee":     CategoryDining,
	"food":       CategoryDining,
	"bakery":     CategoryDining,
	"pizza":      CategoryDining,
	"biryani":    CategoryDining,

	"grocer":      CategoryGroceries,
	"supermarket": CategoryGroceries,
	"kirana":      CategoryGroceries,

	"fuel":    CategoryTransport,
	"petrol":  CategoryTransport,
	"diesel":  CategoryTransport,
	"parking": CategoryTransport,
	"toll":    CategoryTransport,
	"metro":   CategoryTransport,
	"cab":     CategoryTransport,

	"mall":  CategoryShopping,
	"store": CategoryShopping,
	"mart":  CategoryShopping,

	"cinema":  CategoryEntertainment,
	"movie":   CategoryEntertainment,
	"gaming":  CategoryEntertainment,

	"electricity": CategoryUtilities,
	"recharge":    CategoryUtilities,
	"broadband":   CategoryUtilities,
	"gas":         CategoryUtilities,

	"hospital": CategoryMedical,
	"pharmacy": CategoryMedical,
	"clinic":   CategoryMedical,
	"medical":  CategoryMedical,

	"hotel":   CategoryTravel,
	"airline": CategoryTravel,
	"flight":  CategoryTravel,
}

// LookupKnown checks the built-in knowledge base for a brand or keyword
// match. The boolean reports whether the match was a brand hit; keyword-only
// matches return the cleaned token as the name with just a category.
func LookupKnown(token string) (KnownMerchant, bool) {
	lower := strings.ToLower(strings.TrimSpace(token))
	if lower == "" {
		return KnownMerchant{}, false
	}
	for keyword, info := range knownMerchants {
		if strings.Contains(lower, keyword) {
			return info, true
		}
	}
	return KnownMerchant{}, false
}

// GuessCategory returns a category name for a token via keyword fallback, or
// empty when nothing matched.
func GuessCategory(token string) string {
	lower := strings.ToLower(token)
	for keyword, category := range categoryKeywords {
		if strings.Contains(lower, keyword) {
			return category
		}
	}
	return ""
}
