package markov

// Seed corpora for the compiled-in ensemble. The legitimate corpus is
// drawn from common personal-name local parts, including moderate
// digit suffixes that real people use; the fraud corpus is drawn from
// generated-account shapes observed in signup abuse: generic words with
// counters, keyboard mash, and high-entropy strings.

var seedLegit = []string{
	"john.smith", "jane.doe", "michael.johnson", "emily.davis",
	"david.miller", "sarah.wilson", "james.moore", "linda.taylor",
	"robert.anderson", "maria.garcia", "william.martinez", "susan.robinson",
	"joseph.clark", "karen.rodriguez", "thomas.lewis", "nancy.lee",
	"charles.walker", "lisa.hall", "christopher.allen", "betty.young",
	"daniel.hernandez", "sandra.king", "matthew.wright", "ashley.lopez",
	"anthony.hill", "kimberly.scott", "mark.green", "donna.adams",
	"steven.baker", "carol.gonzalez", "andrew.nelson", "michelle.carter",
	"joshua.mitchell", "amanda.perez", "kevin.roberts", "melissa.turner",
	"brian.phillips", "deborah.campbell", "george.parker", "stephanie.evans",
	"edward.edwards", "rebecca.collins", "ronald.stewart", "laura.sanchez",
	"timothy.morris", "helen.rogers", "jason.reed", "amy.cook",
	"jeffrey.morgan", "anna.bell", "ryan.murphy", "kathleen.bailey",
	"jacob.rivera", "shirley.cooper", "gary.richardson", "angela.cox",
	"nicholas.howard", "ruth.ward", "eric.torres", "brenda.peterson",
	"jonathan.gray", "pamela.ramirez", "stephen.james", "katherine.watson",
	"larry.brooks", "nicole.kelly", "justin.sanders", "christine.price",
	"scott.bennett", "catherine.wood", "brandon.barnes", "virginia.ross",
	"benjamin.henderson", "rachel.coleman", "samuel.jenkins", "janet.perry",
	"gregory.powell", "emma.long", "alexander.patterson", "olivia.hughes",
	"patrick.flores", "sophia.washington", "frank.butler", "isabella.simmons",
	"raymond.foster", "charlotte.gonzales", "jack.bryant", "amelia.alexander",
	"dennis.russell", "harper.griffin", "jerry.diaz", "evelyn.hayes",
	"jsmith", "mjohnson", "edavis", "dmiller", "swilson", "jmoore",
	"johnsmith", "janedoe", "mikebrown", "annawhite", "tomclark",
	"petersen", "anderson", "martinez", "thompson", "harrison",
	"john.smith1", "jane.doe2", "michael.j", "sarah.w", "david.m",
	"emily1.davis2", "maria2.garcia1", "anna1.bell2", "laura1.reed1",
	"john1.smith2", "lisa2.hall1", "mark1.green1", "amy2.cook2",
	"john85", "maria92", "david78", "sarah90", "michael88",
	"jsmith01", "mbrown77", "awhite83", "tclark95", "kwilson89",
	"johnny", "mike", "annie", "katie", "tommy", "billy", "jenny",
	"sunshine", "butterfly", "mountain", "rainbow", "october",
	"coffee.lover", "book.worm", "music.fan", "travel.bug",
	"happy.camper", "night.owl", "early.bird", "free.spirit",
	"alessandro.rossi", "marie.dubois", "hans.mueller", "yuki.tanaka",
	"carlos.silva", "elena.petrova", "lars.nielsen", "sofia.andersson",
	"pierre.martin", "ingrid.larsen", "marco.ricci", "freya.hansen",
}

var seedFraud = []string{
	"user1", "user2", "user12", "user123", "user1234", "user12345",
	"user001", "user002", "user0001", "user9999",
	"test1", "test12", "test123", "test1234", "test001", "testtest1",
	"admin1", "admin123", "temp1", "temp123", "temp0001",
	"account1", "account123", "signup1", "signup123", "register1",
	"newuser1", "newuser123", "myemail1", "mymail123",
	"demo1", "demo123", "info123", "mail123", "contact123",
	"abc123", "abc1234", "xyz789", "xyz123", "aaa111", "zzz999",
	"qwerty1", "qwerty12", "qwerty123", "qwerty1234",
	"asdf123", "asdf1234", "asdfgh12", "zxcvbn12", "qazwsx123",
	"qwertyuiop1", "asdfghjkl1", "poiuyt123",
	"xk9m2qw7r4p", "zq8xv3kj9w", "pk2v9xm4qz", "wj7rn3xq8k",
	"bx4kq9zm2w", "vk8jx2qn7m", "qz3wk9vx4j", "mx7qk2jz9v",
	"hq4zx8wk3n", "rk9vq2mx7z", "jw3kx8qz4v", "nz7mk4qx9w",
	"kj2qw9zx3v", "xq8vn4km2z", "zw9kj3qx7m", "vm4xq8zk2w",
	"a1b2c3d4", "x1y2z3", "q1w2e3r4", "z9y8x7w6",
	"aaaa1111", "bbbb2222", "xxxx9999", "qqqq1234",
	"fdsgsdfg", "hjklhjkl", "wqwqwqwq", "xzxzxzxz",
	"sdkfjhsdkf", "qwkjehqkwe", "zmxncbzmxn", "plkjmnbvcx",
	"gfhjkdfgh", "rtyufghvbn", "wsxedcrfv", "tgbyhnujm",
	"john123456", "mike999888", "anna777666", "dave555444",
	"smith00001", "brown00002", "jones99998",
	"bonus1", "bonus123", "promo1", "promo123", "offer123",
	"free123", "win123", "prize123", "claim123", "deal123",
	"shop1234", "buy12345", "sale9999",
	"mailbox1", "mailbox123", "inbox123", "email123", "address123",
	"acc1", "acc123", "usr1", "usr123", "tmp123", "reg123",
	"x123456", "a123456", "q1234567", "z9876543",
	"kqwxzjvm", "xzvbnmqw", "qpwoeiru", "zmxkcjvb",
}
