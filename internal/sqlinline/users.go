package sqlinline

const QSelectUserIDByEmail = `--sql 2f753278-be24-43f9-9b86-c753f3ecdf53
select id
from users
where email = $1::text
limit 1;
`

const QInsertUser = `--sql aa67ee16-7d36-4bd0-ac13-8865294dd2ef
insert into users(
  fullname,
  email,
  phone,
  age,
  address,
  profession,
  organization,
  motivation,
  skills,
  availability,
  hear_about,
  join_type,
  newsletter,
  status,
  created_at
) values (
  $1::text,
  $2::text,
  $3::text,
  $4::int,
  $5::text,
  $6::text,
  $7::text,
  $8::text,
  $9::text,
  $10::text,
  $11::text,
  $12::text,
  $13::boolean,
  'pending',
  now()
) returning id, created_at;
`

const QApproveUser = `--sql e0e6cc03-4c85-4b42-bfa6-effde89e3f14
update users
set status = 'approved'
where id = $1::bigint and status = 'pending';
`

const QRejectUser = `--sql 7b12d6cf-9322-4b05-a5c8-4642ec85de87
update users
set status = 'rejected'
where id = $1::bigint and status = 'pending';
`

const QListRecentUsers = `--sql 808cc9bf-e275-4b76-9bcb-8c15fdbc7250
select id, fullname, email, phone, join_type, status, created_at
from users
order by created_at desc
limit $1::int;
`
