package refdata

import "time"

// Compiled-in fallback sets. Served when the KV store has never been
// populated and is unreachable; the refresher replaces them with the
// full published lists.

var fallbackDisposableDomains = []string{
	"0-mail.com", "10minutemail.com", "10minutemail.net", "20minutemail.com",
	"33mail.com", "anonbox.net", "anonymbox.com", "binkmail.com", "bobmail.info",
	"burnermail.io", "chammy.info", "deadaddress.com", "despam.it", "discard.email",
	"discardmail.com", "disposableinbox.com", "dispostable.com", "dodgeit.com",
	"dropmail.me", "emailondeck.com", "emailsensei.com", "emltmp.com", "fakeinbox.com",
	"fakemail.net", "fakemailgenerator.com", "getairmail.com", "getnada.com",
	"guerrillamail.biz", "guerrillamail.com", "guerrillamail.de", "guerrillamail.net",
	"guerrillamail.org", "guerrillamailblock.com", "harakirimail.com", "inboxalias.com",
	"incognitomail.com", "jetable.org", "kasmail.com", "keemail.me", "koszmail.pl",
	"kurzepost.de", "lifebyfood.com", "mail-temporaire.fr", "mail.tm", "mail1a.de",
	"mail21.cc", "mail2world.com", "mailcatch.com", "maildrop.cc", "maildu.de",
	"maileater.com", "mailexpire.com", "mailforspam.com", "mailfreeonline.com",
	"mailin8r.com", "mailinater.com", "mailinator.com", "mailinator.net",
	"mailinator2.com", "mailismagic.com", "mailme.lv", "mailmetrash.com",
	"mailmoat.com", "mailnesia.com", "mailnull.com", "mailshell.com", "mailsiphon.com",
	"mailslite.com", "mailtemp.info", "mailtothis.com", "mailzilla.com", "makemetheking.com",
	"meltmail.com", "mintemail.com", "moburl.com", "mohmal.com", "mt2009.com",
	"mytrashmail.com", "no-spam.ws", "nobulk.com", "noclickemail.com", "nogmailspam.info",
	"nomail.xl.cx", "nospam4.us", "nospamfor.us", "nowmymail.com", "objectmail.com",
	"obobbo.com", "oneoffemail.com", "onewaymail.com", "owlpic.com", "pookmail.com",
	"proxymail.eu", "rcpt.at", "recode.me", "regbypass.com", "rmqkr.net", "safe-mail.net",
	"sharklasers.com", "shieldemail.com", "shiftmail.com", "shortmail.net", "sinnlos-mail.de",
	"smellfear.com", "snakemail.com", "sneakemail.com", "sogetthis.com", "soodonims.com",
	"spam4.me", "spamavert.com", "spambob.net", "spambog.com", "spambox.us",
	"spamcannon.com", "spamcero.com", "spamcorptastic.com", "spamcowboy.com",
	"spamday.com", "spamex.com", "spamfree24.com", "spamgourmet.com", "spamhole.com",
	"spaminator.de", "spamkill.info", "spaml.com", "spammotel.com", "spamobox.com",
	"spamspot.com", "spamthis.co.uk", "spamtroll.net", "stuffmail.de", "supergreatmail.com",
	"suremail.info", "teleworm.us", "temp-mail.org", "temp-mail.ru", "tempail.com",
	"tempe-mail.com", "tempemail.co.za", "tempemail.com", "tempemail.net",
	"tempinbox.co.uk", "tempinbox.com", "tempmail.com", "tempmail.eu", "tempmail.net",
	"tempmail2.com", "tempmaildemo.com", "tempmailer.com", "tempomail.fr",
	"temporaryemail.net", "temporaryinbox.com", "thankyou2010.com", "thisisnotmyrealemail.com",
	"throwawayemailaddress.com", "throwawaymail.com", "tilien.com", "tmailinator.com",
	"tradermail.info", "trash-amil.com", "trash-mail.at", "trash-mail.com", "trash-mail.de",
	"trash2009.com", "trashdevil.com", "trashemail.de", "trashmail.at", "trashmail.com",
	"trashmail.de", "trashmail.me", "trashmail.net", "trashymail.com", "tyldd.com",
	"uggsrock.com", "wegwerfmail.de", "wegwerfmail.net", "wegwerfmail.org", "wh4f.org",
	"whyspam.me", "willselfdestruct.com", "winemaven.info", "wronghead.com", "wuzup.net",
	"wuzupmail.net", "yepmail.net", "yogamaven.com", "yopmail.com", "yopmail.fr",
	"yopmail.net", "ypmail.webarnak.fr.eu.org", "zehnminutenmail.de", "zippymail.info",
	"zoemail.net",
}

var fallbackFreeProviders = []string{
	"aol.com", "fastmail.com", "gmail.com", "gmx.com", "gmx.de", "googlemail.com",
	"hotmail.co.uk", "hotmail.com", "hotmail.fr", "icloud.com", "inbox.com",
	"laposte.net", "libero.it", "live.com", "mail.com", "mail.ru", "me.com",
	"msn.com", "orange.fr", "outlook.com", "protonmail.com", "proton.me",
	"rediffmail.com", "seznam.cz", "tutanota.com", "web.de", "yahoo.co.uk",
	"yahoo.com", "yahoo.fr", "yandex.com", "yandex.ru", "zoho.com",
}

// fallbackTLDProfiles is the compiled-in TLD risk table. Multipliers map
// onto [0,1] via (m - 0.2) / 2.8.
var fallbackTLDProfiles = map[string]TLDProfile{
	// Trusted: restricted registration
	"edu": {Category: TLDTrusted, RiskMultiplier: 0.2, Description: "accredited institutions"},
	"gov": {Category: TLDTrusted, RiskMultiplier: 0.2, Description: "government"},
	"mil": {Category: TLDTrusted, RiskMultiplier: 0.2, Description: "military"},
	"int": {Category: TLDTrusted, RiskMultiplier: 0.3, Description: "treaty organisations"},

	// Standard: mainstream commercial and country TLDs
	"com": {Category: TLDStandard, RiskMultiplier: 1.0},
	"org": {Category: TLDStandard, RiskMultiplier: 1.0},
	"net": {Category: TLDStandard, RiskMultiplier: 1.0},
	"io":  {Category: TLDStandard, RiskMultiplier: 1.1},
	"co":  {Category: TLDStandard, RiskMultiplier: 1.1},
	"me":  {Category: TLDStandard, RiskMultiplier: 1.2},
	"dev": {Category: TLDStandard, RiskMultiplier: 1.0},
	"app": {Category: TLDStandard, RiskMultiplier: 1.0},
	"uk":  {Category: TLDStandard, RiskMultiplier: 1.0},
	"de":  {Category: TLDStandard, RiskMultiplier: 1.0},
	"fr":  {Category: TLDStandard, RiskMultiplier: 1.0},
	"nl":  {Category: TLDStandard, RiskMultiplier: 1.0},
	"ca":  {Category: TLDStandard, RiskMultiplier: 1.0},
	"au":  {Category: TLDStandard, RiskMultiplier: 1.0},
	"jp":  {Category: TLDStandard, RiskMultiplier: 1.0},
	"br":  {Category: TLDStandard, RiskMultiplier: 1.1},
	"in":  {Category: TLDStandard, RiskMultiplier: 1.1},
	"it":  {Category: TLDStandard, RiskMultiplier: 1.0},
	"es":  {Category: TLDStandard, RiskMultiplier: 1.0},
	"ch":  {Category: TLDStandard, RiskMultiplier: 1.0},
	"se":  {Category: TLDStandard, RiskMultiplier: 1.0},
	"ru":  {Category: TLDStandard, RiskMultiplier: 1.4},

	// Suspicious: elevated abuse rates in signup traffic
	"info":    {Category: TLDSuspicious, RiskMultiplier: 1.8, Description: "elevated abuse"},
	"biz":     {Category: TLDSuspicious, RiskMultiplier: 1.8, Description: "elevated abuse"},
	"online":  {Category: TLDSuspicious, RiskMultiplier: 2.0, Description: "cheap registration"},
	"site":    {Category: TLDSuspicious, RiskMultiplier: 2.0, Description: "cheap registration"},
	"website": {Category: TLDSuspicious, RiskMultiplier: 2.0, Description: "cheap registration"},
	"space":   {Category: TLDSuspicious, RiskMultiplier: 2.0, Description: "cheap registration"},
	"fun":     {Category: TLDSuspicious, RiskMultiplier: 2.1, Description: "cheap registration"},
	"pro":     {Category: TLDSuspicious, RiskMultiplier: 1.7},
	"club":    {Category: TLDSuspicious, RiskMultiplier: 2.0},
	"live":    {Category: TLDSuspicious, RiskMultiplier: 1.9},
	"shop":    {Category: TLDSuspicious, RiskMultiplier: 1.9},

	// High risk: free or near-free registration, heavy bulk abuse
	"tk":         {Category: TLDHighRisk, RiskMultiplier: 3.0, Description: "free registration"},
	"ml":         {Category: TLDHighRisk, RiskMultiplier: 3.0, Description: "free registration"},
	"ga":         {Category: TLDHighRisk, RiskMultiplier: 3.0, Description: "free registration"},
	"cf":         {Category: TLDHighRisk, RiskMultiplier: 3.0, Description: "free registration"},
	"gq":         {Category: TLDHighRisk, RiskMultiplier: 3.0, Description: "free registration"},
	"top":        {Category: TLDHighRisk, RiskMultiplier: 2.7, Description: "bulk abuse"},
	"xyz":        {Category: TLDHighRisk, RiskMultiplier: 2.5, Description: "bulk abuse"},
	"click":      {Category: TLDHighRisk, RiskMultiplier: 2.8, Description: "bulk abuse"},
	"link":       {Category: TLDHighRisk, RiskMultiplier: 2.7, Description: "bulk abuse"},
	"work":       {Category: TLDHighRisk, RiskMultiplier: 2.6, Description: "bulk abuse"},
	"loan":       {Category: TLDHighRisk, RiskMultiplier: 2.9, Description: "bulk abuse"},
	"racing":     {Category: TLDHighRisk, RiskMultiplier: 2.8, Description: "bulk abuse"},
	"review":     {Category: TLDHighRisk, RiskMultiplier: 2.8, Description: "bulk abuse"},
	"stream":     {Category: TLDHighRisk, RiskMultiplier: 2.8, Description: "bulk abuse"},
	"gdn":        {Category: TLDHighRisk, RiskMultiplier: 2.9, Description: "bulk abuse"},
	"men":        {Category: TLDHighRisk, RiskMultiplier: 2.9, Description: "bulk abuse"},
	"date":       {Category: TLDHighRisk, RiskMultiplier: 2.8, Description: "bulk abuse"},
	"party":      {Category: TLDHighRisk, RiskMultiplier: 2.8, Description: "bulk abuse"},
	"trade":      {Category: TLDHighRisk, RiskMultiplier: 2.8, Description: "bulk abuse"},
	"accountant": {Category: TLDHighRisk, RiskMultiplier: 2.9, Description: "bulk abuse"},
}

func fallbackMeta(count int) TableMeta {
	return TableMeta{
		Count:       count,
		LastUpdated: time.Time{},
		Version:     "builtin",
		Sources:     []string{"builtin"},
	}
}

func fallbackDisposableTable() *domainTable {
	set := make(map[string]struct{}, len(fallbackDisposableDomains))
	for _, d := range fallbackDisposableDomains {
		set[d] = struct{}{}
	}
	return &domainTable{set: set, meta: fallbackMeta(len(set))}
}

func fallbackFreeTable() *domainTable {
	set := make(map[string]struct{}, len(fallbackFreeProviders))
	for _, d := range fallbackFreeProviders {
		set[d] = struct{}{}
	}
	return &domainTable{set: set, meta: fallbackMeta(len(set))}
}

func fallbackTLDTable() *tldTable {
	return &tldTable{profiles: fallbackTLDProfiles, meta: fallbackMeta(len(fallbackTLDProfiles))}
}
