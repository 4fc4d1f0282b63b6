package spell

// baseWords is the embedded common-English word list consulted before the
// user dictionary. Whitespace-separated, all lower-case.
const baseWords = `
the and or but in on at to for of with by from up about into through during
before after above below between among under over inside outside within
without against toward upon across behind beneath beside beyond except
since until while where when why how what which who whom whose this that
these those here there now then today tomorrow yesterday always never
sometimes often usually rarely seldom frequently occasionally constantly
immediately suddenly quickly slowly carefully easily hardly nearly almost
quite very too enough more most less least much many few little some any
all both each every either neither other another same different similar
such like unlike as than so because although though however therefore thus
hence moreover furthermore nevertheless nonetheless meanwhile otherwise
instead besides also not only just even still yet already again once twice
first second third last next previous following final initial original new
old young ancient modern recent current past future present early late
good bad great small large big huge tiny enormous massive beautiful ugly
pretty attractive lovely cute charming elegant graceful stylish unusual
strange weird odd peculiar bizarre normal ordinary common rare unique
special particular specific general universal global local national
international personal private public official formal informal casual
serious funny amusing entertaining boring interesting exciting thrilling
amazing incredible fantastic wonderful excellent perfect terrible awful
horrible pleasant enjoyable delightful satisfying disappointing
frustrating annoying irritating disturbing shocking surprising expected
unexpected predictable certain uncertain sure unsure confident doubtful
hopeful hopeless optimistic pessimistic positive negative happy sad joyful
miserable cheerful gloomy excited calm peaceful angry furious mad upset
worried anxious nervous relaxed comfortable uncomfortable tired exhausted
energetic lazy busy free available occupied empty full complete incomplete
finished unfinished ready prepared organized clean dirty neat messy tidy
clear unclear obvious hidden visible invisible bright dark light heavy
easy difficult hard soft rough smooth sharp dull hot cold warm cool wet
dry solid liquid frozen fresh stale sweet sour bitter salty spicy mild
strong weak powerful gentle violent dangerous safe secure risky careful
careless cautious reckless brave bold shy outgoing friendly kind cruel
generous selfish honest truthful loyal faithful reliable responsible
mature wise foolish smart intelligent educated experienced skilled
talented creative artistic scientific technical practical theoretical
logical reasonable sensible rational realistic possible impossible
probable likely unlikely necessary unnecessary important significant
relevant useful useless helpful beneficial harmful profitable successful
effective efficient productive active inactive idle working resting
moving fast slow quick gradual sudden immediate instant delayed prompt
timely temporary permanent brief lengthy short long narrow wide thin
thick slim fat tall high low deep shallow close far near distant home
away back forward ahead left right straight curved round square circular
flat steep level uneven bumpy crooked bent twisted broken fixed damaged
repaired used latest former copy duplicate extra additional insufficient
adequate plenty scarce abundant limited unlimited finite infinite maximum
minimum average standard regular irregular typical individual collective
single multiple several various diverse uniform mixed pure transparent
opaque secret known unknown familiar unfamiliar consistent inconsistent
constant variable stable unstable steady firm loose tight slack tense
rigid flexible hollow dense sparse mighty feeble
note notes word words text title plan cat dog world hello write writing
read reading page paper book letter list item thing things people person
time day night week month year work play make made take have has had was
were been being does did done will would can could shall should may might
must need want see saw seen say said tell told ask asked give gave get
got go went come came know knew think thought feel felt find found look
looked use call called try tried leave left put keep kept let begin began
start started show showed hear heard run ran move moved live lived
believe believed hold held bring brought happen happened sit sat stand
stood lose lost pay paid meet met include included continue continued set
learn learned change changed lead led understand understood watch watched
follow followed stop stopped create created speak spoke allow allowed add
added spend spent grow grew open opened walk walked win won offer offered
remember remembered love loved consider considered appear appeared buy
bought wait waited serve served die died send sent expect expected build
built stay stayed fall fell cut reach reached kill killed remain remained
`
